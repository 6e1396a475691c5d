package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/config"
	"github.com/xavierca1/quotedesk/internal/infra/logging"
	"github.com/xavierca1/quotedesk/internal/infra/queue"
)

// worker consumes lead events and writes them to the activity log.
func main() {
	cfg := config.Read()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.AMQPURL == "" {
		log.Fatal().Msg("AMQP_URL is required")
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbitmq unavailable")
	}
	defer rabbitMQ.Close()

	if err := rabbitMQ.Ch.Qos(10, 0, false); err != nil {
		log.Fatal().Err(err).Msg("set prefetch")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSrv := &http.Server{Addr: ":" + cfg.Port, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	worker := queue.NewWorker(rabbitMQ.Ch, queue.LogActivity)
	if err := worker.Start(ctx, queue.QueueName); err != nil {
		log.Error().Err(err).Msg("consume failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	metricsSrv.Shutdown(shutdownCtx)
	log.Info().Msg("worker stopped")
}
