package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/iot-manager/console/internal/config"
	consoleerrors "github.com/iot-manager/console/internal/errors"
	"github.com/iot-manager/console/internal/logging"
	"github.com/iot-manager/console/pkg/middleware"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		flags     configFlags
		overrides config.Overrides
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the console HTTP server",
		Long: `Start the console HTTP server.

Every page path is served under the base path. Browsers navigate over a
live socket at {base}/_nav without reloading. Health and metrics are
served at /healthz and /metrics.

Examples:
  console serve
  console serve --addr :9000 --base /console
  SERVICE_ENV=production console serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(overrides)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&overrides.Addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&overrides.BasePath, "base", "b", "", "Base path the console is served under")

	return cmd
}

// newServer wires the configured route table, middleware and metrics into
// an HTTP server.
func newServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	set, table, err := buildTable(cfg)
	if err != nil {
		return nil, err
	}

	var (
		mws  []navigation.Middleware
		opts = []server.Option{server.WithLogger(logger)}
	)
	if cfg.Tracing.IsEnabled() {
		mws = append(mws, middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	if cfg.Metrics.IsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		mws = append(mws, m.Middleware())
		opts = append(opts, server.WithMetrics(m, reg))
	}
	mws = append(mws, middleware.Logging(logger))
	opts = append(opts, server.WithMiddleware(mws...))

	return server.New(server.Config{
		Addr:            cfg.Server.Addr,
		BasePath:        cfg.Server.BasePath,
		ReadTimeout:     cfg.Server.ReadTimeoutDuration(),
		WriteTimeout:    cfg.Server.WriteTimeoutDuration(),
		ShutdownTimeout: cfg.ShutdownTimeoutDuration(),
		LiveNavigation:  cfg.Server.LiveNavigationEnabled(),
	}, table, set, opts...), nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(&cfg.Logging)
	slog.SetDefault(logger)

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("console starting",
		"version", version,
		"variant", string(cfg.Variant()),
		"env", os.Getenv(config.EnvServiceEnv))

	if err := srv.Run(ctx); err != nil {
		return consoleerrors.New("S001").Wrap(err)
	}
	return nil
}
