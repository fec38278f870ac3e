package main

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/cache"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/client"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/config"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/render"
	"github.com/aaravmahajanofficial/storefront-catalog/internal/telemetry"
	"github.com/spf13/cobra"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

// errReported means the failure is already on screen.
var errReported = stdErrors.New("reported")

type app struct {
	// global flags
	configPath  string
	logLevel    string
	dumpMetrics bool
	jsonOut     bool

	out    io.Writer
	errOut io.Writer

	cfg      *config.Config
	client   *client.Client
	cache    cache.Cache
	shutdown telemetry.ShutdownFunc
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {

	a := &app{out: out, errOut: errOut}

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	a.close()

	if err == nil {
		return 0
	}

	if !stdErrors.Is(err, errReported) {
		if a.jsonOut {
			_ = render.JSONError(out, err)
		} else {
			_ = render.New(errOut).Error(err)
		}
	}

	return 1
}

func (a *app) rootCmd() *cobra.Command {

	root := &cobra.Command{
		Use:   "storefront-catalog",
		Short: "Browse the storefront product catalog from the terminal",
		Long: `storefront-catalog talks to the storefront's catalog API.

It lists products with the same filters as the storefront sidebar, shows a
product with its related products, checks the API's health and submits the
sign-in and sign-up forms.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the YAML config file (CONFIG_PATH takes precedence)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.dumpMetrics, "metrics", false, "write Prometheus metrics to stderr on exit")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print JSON instead of tables")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.relatedCmd(),
		a.healthCmd(),
		a.signInCmd(),
		a.signUpCmd(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	shutdown, err := telemetry.Setup(cmd.Context(), a.cfg.Otel, version)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.shutdown = shutdown

	a.client, err = client.New(a.cfg.API.BaseURL, client.WithTimeout(a.cfg.API.Timeout))
	if err != nil {
		return err
	}

	slog.Debug("catalog client initialized",
		slog.String("env", a.cfg.Env), slog.String("base_url", a.client.BaseURL()), slog.String("version", version))

	return nil
}

// openCache connects the configured result cache. Only the listing uses it.
func (a *app) openCache(ctx context.Context) cache.Cache {

	c, err := cache.New(ctx, a.cfg)
	if err != nil {
		slog.Warn("Result cache unavailable, continuing without it", slog.String("backend", a.cfg.Cache.Backend), slog.String("error", err.Error()))
		return nil
	}

	a.cache = c

	return c
}

func (a *app) close() {

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("Error closing cache", slog.String("error", err.Error()))
		}
	}

	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.shutdown(ctx); err != nil {
			slog.Warn("Error flushing traces", slog.String("error", err.Error()))
		}
	}

	if a.dumpMetrics {
		if err := metrics.Dump(a.errOut, nil); err != nil {
			slog.Warn("Error writing metrics", slog.String("error", err.Error()))
		}
	}
}

func (a *app) printer() *render.Renderer {
	return render.New(a.out)
}
