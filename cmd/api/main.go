package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xavierca1/quotedesk/internal/config"
	"github.com/xavierca1/quotedesk/internal/infra/database"
	"github.com/xavierca1/quotedesk/internal/infra/http/handlers"
	"github.com/xavierca1/quotedesk/internal/infra/integration/supabase"
	"github.com/xavierca1/quotedesk/internal/infra/logging"
	"github.com/xavierca1/quotedesk/internal/infra/mail"
	"github.com/xavierca1/quotedesk/internal/infra/queue"
	"github.com/xavierca1/quotedesk/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", "console")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.MigrateUp(db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		log.Info().Msg("migrations applied")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	agentRepo := database.NewAgentRepository(db)
	noteRepo := database.NewNoteRepository(db)
	documentRepo := database.NewDocumentRepository(db)

	// 2. Gateways and adapters
	var (
		events   usecase.EventPublisher
		rabbitMQ handlers.Checker
	)
	if cfg.AMQPURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq unavailable")
		}
		defer rmq.Close()
		events = queue.NewLeadEventPublisher(rmq.Ch)
		rabbitMQ = rmq
	} else {
		log.Warn().Msg("AMQP_URL not set, lead events are not published")
	}

	var (
		limiter handlers.Limiter
		rdb     handlers.RedisPinger
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		defer client.Close()
		limiter = handlers.NewRedisRateLimiter(client, "ratelimit", cfg.RateLimitPerMinute, time.Minute)
		rdb = client
	} else {
		memory := handlers.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		defer memory.Stop()
		limiter = memory
	}

	supabaseClient := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	if !supabaseClient.Configured() {
		log.Warn().Msg("SUPABASE_URL or SUPABASE_SERVICE_KEY not set, accounts and documents are unavailable")
	}
	blobs := supabase.NewStorage(supabaseClient, cfg.StorageBucket)
	identity := supabase.NewAuth(supabaseClient)
	sessions := supabase.NewSessionVerifier(cfg.JWTSecret)

	mailer := mail.NewMailer(mail.SelectTransport(
		mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom),
		mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom),
	), cfg.SiteURL)
	if !mailer.Configured() {
		log.Warn().Msg("no email transport configured, notifications will fail")
	}

	// 3. Use cases
	notifier := usecase.NewNotifier(leadRepo, agentRepo, mailer)
	assigner := usecase.NewAssignLeadUseCase(leadRepo, usecase.NewFirstMatchSelector(agentRepo), notifier, events, cfg.AssignmentCompareAndSwap)
	createLead := usecase.NewCreateLeadUseCase(leadRepo, notifier, assigner, events)
	leadService := usecase.NewLeadService(leadRepo, agentRepo, noteRepo, documentRepo, blobs, notifier, events)
	agentService := usecase.NewAgentService(agentRepo, leadRepo, noteRepo, documentRepo, blobs, identity)
	noteService := usecase.NewNoteService(leadRepo, noteRepo)
	documentService := usecase.NewDocumentService(leadRepo, documentRepo, blobs, cfg.MaxUploadBytes)

	// 4. Handlers
	router := newRouter(routerDeps{
		AllowedOrigins:    cfg.AllowedOrigins,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Verifier:          sessions,
		Limiter:           limiter,
		Health:            handlers.NewHealthHandler(db, rabbitMQ, rdb, version),
		Quotes:            handlers.NewQuoteHandler(createLead),
		Leads:             handlers.NewLeadHandler(leadService, createLead),
		Agents:            handlers.NewAgentHandler(agentService),
		Notes:             handlers.NewNoteHandler(noteService),
		Documents:         handlers.NewDocumentHandler(documentService, cfg.MaxUploadBytes),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
