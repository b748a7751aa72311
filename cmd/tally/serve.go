package main

import (
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tally/internal/config"
	"github.com/vango-dev/tally/internal/errors"
	"github.com/vango-dev/tally/pkg/components"
	"github.com/vango-dev/tally/pkg/middleware"
	"github.com/vango-dev/tally/pkg/server"
	"github.com/vango-dev/tally/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		message    string
		step       int
		dev        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter over HTTP",
		Long: `Serve the counter page and keep it live over WebSocket.

Settings come from tally.yaml, tally.yml or tally.json in the working
directory, or the file given with --config. Flags override the file.

Examples:
  tally serve
  tally serve --addr :8080 --message Visitors
  tally serve --config ./deploy/tally.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("addr") {
				if err := applyAddr(cfg, addr); err != nil {
					return err
				}
			}
			if flags.Changed("message") {
				cfg.Counter.Message = message
			}
			if flags.Changed("step") {
				cfg.Counter.Step = &step
			}
			if flags.Changed("dev") {
				cfg.Dev = dev
			}

			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := newServer(cfg, logger, prometheus.DefaultRegisterer)
			success(cmd.OutOrStdout(), "Serving on http://%s", cfg.Addr())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: tally.yaml in the working directory)")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address, host:port")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Counter message")
	cmd.Flags().IntVarP(&step, "step", "s", 0, "Counter step")
	cmd.Flags().BoolVar(&dev, "dev", false, "Development mode")

	return cmd
}

// loadConfig loads path, or the config in the working directory when path
// is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E021").Wrap(err)
	}
	return config.Load(wd)
}

// applyAddr splits addr into the config's host and port.
func applyAddr(cfg *config.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E020").WithDetailf("--addr %q: %v", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.New("E020").WithDetailf("--addr %q: invalid port", addr)
	}
	cfg.Server.Host = host
	cfg.Server.Port = port
	return cfg.Validate()
}

// rootFactory returns the per-session root component described by cfg.
// A card with a code renders as a response card, otherwise as a message card.
func rootFactory(cfg *config.Config) func() vdom.Component {
	props := components.CounterProps{Message: cfg.Counter.Message, Step: cfg.Counter.Step}

	var card vdom.Component
	switch {
	case cfg.Card.Title == "":
	case cfg.Card.Code != nil:
		card = components.ResponseCardOf(components.AppProps[components.AppResponse]{
			Title:       cfg.Card.Title,
			Description: cfg.Card.Description,
			APIResponse: components.APIResponse[components.AppResponse]{
				Payload: components.AppResponse{Message: cfg.Card.Payload, Code: *cfg.Card.Code},
			},
		})
	default:
		card = components.MessageCardOf(components.AppProps[string]{
			Title:       cfg.Card.Title,
			Description: cfg.Card.Description,
			APIResponse: components.APIResponse[string]{Payload: cfg.Card.Payload},
		})
	}

	return func() vdom.Component {
		return components.NewPage(card, props)
	}
}

// newServer wires a server from cfg. Metrics register on reg.
func newServer(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) *server.Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sc := &server.ServerConfig{
		Address:         cfg.Addr(),
		Title:           cfg.Counter.Message,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		Logger:          logger,
		DevMode:         cfg.Dev,
	}
	if cfg.Card.Title != "" {
		sc.Title = cfg.Card.Title
	}

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		)
		sc.MetricsHandler = metrics.Handler()
		sc.MetricsPath = cfg.Metrics.Path
		sc.OnSessionStart = metrics.SessionStarted
		sc.OnSessionEnd = metrics.SessionEnded
	}

	srv := server.New(sc, rootFactory(cfg))
	if cfg.Tracing.Enabled {
		srv.Use(middleware.OpenTelemetry(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	if metrics != nil {
		srv.Use(metrics.Middleware())
	}
	srv.Use(server.EventMiddlewareFunc(func(ctx *server.EventContext, next func() error) error {
		logger.Debug("event", "session_id", ctx.SessionID(), "hid", ctx.HID(), "event", ctx.Event())
		return next()
	}))
	return srv
}
