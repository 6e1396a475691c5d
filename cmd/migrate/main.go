package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xavierca1/quotedesk/internal/config"
	"github.com/xavierca1/quotedesk/internal/infra/database"
	"github.com/xavierca1/quotedesk/internal/infra/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the quotedesk database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				return ignoreNoChange(m.Up())
			}),
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the given number of migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				return ignoreNoChange(m.Steps(-steps))
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					fmt.Println("no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Printf("version %d (dirty: %t)\n", v, dirty)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations, clearing the dirty flag",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("version must be an integer, got %q", args[0])
				}
				return m.Force(v)
			}),
		},
	)

	return root
}

func withMigrator(fn func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Read()
		logging.Setup(cfg.LogLevel, cfg.LogFormat)

		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}

		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		m, err := database.NewMigrator(db)
		if err != nil {
			return err
		}

		if err := fn(m, args); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("migration command failed")
			return err
		}
		log.Info().Str("command", cmd.Name()).Msg("migration command finished")
		return nil
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
