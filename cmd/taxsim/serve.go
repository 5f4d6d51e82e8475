package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/logging"
	"github.com/fiscalite/taxsim/internal/report"
	"github.com/fiscalite/taxsim/internal/server"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulators over HTTP",
		Long: `Serve the simulators as a JSON API.

Configuration comes from the environment, after loading .env if present:
TAXSIM_ADDR, TAXSIM_ENV, TAXSIM_RATES_DIR, DATABASE_URL, DB_MAX_OPEN_CONNS,
RESEND_API_KEY, RESEND_FROM_NAME and RESEND_FROM_EMAIL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadServerConfig()
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("rates-dir") {
				cfg.RatesDir, _ = cmd.Flags().GetString("rates-dir")
			}

			level := "info"
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				level = "debug"
			}
			logger := logging.New(logging.Config{Level: level, Pretty: !cfg.IsProduction(), Out: cmd.ErrOrStderr()})

			engine, err := loadEngine(cfg.RatesDir, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := store.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			repo := store.NewSimulationRepository(db.DB())

			reportsPerHour, _ := cmd.Flags().GetInt("reports-per-hour")
			server.Version = version
			srv := server.New(server.Dependencies{
				Engine:        engine,
				Repository:    repo,
				Reports:       report.NewService(engine, repo, report.NewSender(cfg.Email, logger), logger),
				HealthCheck:   func(ctx context.Context) bool { return db.HealthCheck(ctx) },
				ReportLimiter: server.NewRateLimiter(reportsPerHour, time.Hour),
				Logger:        logger,
			})
			logger.Info().Ints("tax_years", engine.Rates.Years()).Msg("rate tables loaded")
			return srv.Run(ctx, cfg)
		},
	}
	cmd.Flags().String("addr", "", "Listen address, overriding TAXSIM_ADDR")
	cmd.Flags().Int("reports-per-hour", 20, "Report requests allowed per client and hour (0 disables the limit)")
	return cmd
}
