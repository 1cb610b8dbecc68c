package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/iwvelando/housing-advisor/internal/server"
	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var serverConfigPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load server configuration at %s: %w", serverConfigPath, err)
			}

			logger, err := initializeLogger(cfg.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			opts := server.Options{
				MaxRequestSize: cfg.RequestSizeBytes(),
				Version:        Version,
				Metrics:        server.NewMetrics(registry),
			}
			if cfg.RateLimit.Requests > 0 {
				opts.RateLimiter = server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimitWindow())
			}

			logger.Info("starting server",
				zap.String("op", "cli.serve"),
				zap.String("address", cfg.Address),
				zap.Int64("maxRequestSizeBytes", cfg.RequestSizeBytes()),
				zap.Int("rateLimitRequests", cfg.RateLimit.Requests),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, cfg, server.NewHandler(logger, opts), logger)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	return cmd
}
