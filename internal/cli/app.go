package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"urlclient/internal/api"
	"urlclient/internal/applog"
	"urlclient/internal/cache"
	"urlclient/internal/config"
	"urlclient/internal/dashboard"
	"urlclient/internal/domain"
	"urlclient/internal/form"
	"urlclient/internal/ids"
	"urlclient/internal/validation"
)

// app holds the components shared by every command of one run.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	logs      *applog.Service
	forwarder *applog.HTTPForwarder
	client    *api.Client
	validator *validation.Validator

	showLogs  bool
	logFilter domain.LogLevel
	closers   []func()
}

func (a *app) init(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	a.cfg = cfg

	if opts.logFilter != "" {
		level, err := domain.ParseLogLevel(opts.logFilter)
		if err != nil {
			return err
		}
		a.logFilter = level
	}
	a.showLogs = opts.showLogs || opts.logFilter != ""

	a.logger = slog.New(slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	logOpts := []applog.Option{applog.WithLogger(a.logger)}
	if cfg.Forward.Enabled {
		a.forwarder = applog.NewHTTPForwarder(cfg.API.BaseURL, &cfg.Forward, a.logger)
		a.forwarder.Start(ctx)
		a.closers = append(a.closers, a.forwarder.Close)
		logOpts = append(logOpts, applog.WithForwarder(a.forwarder))
	}
	a.logs = applog.New(cfg.Log.BufferCapacity, logOpts...)

	a.client = api.New(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout}, a.logs)
	a.validator = validation.New(a.logs)
	return nil
}

func (a *app) newForm() (*form.Form, error) {
	gen, err := ids.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return form.New(a.cfg.Form.MaxEntries, a.client, a.validator, gen, a.logs)
}

func (a *app) newDashboard() (*dashboard.Dashboard, error) {
	statsCache, err := cache.New(a.cfg.Cache.MaxSizePow2, a.cfg.Cache.StatsTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats cache: %w", err)
	}
	a.closers = append(a.closers, statsCache.Close)
	return dashboard.New(a.client, statsCache, a.logs), nil
}

// close stops background work and prints the log buffer if it was asked for.
// It is safe to call when init never ran.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil

	if a.logs == nil || !a.showLogs {
		return
	}
	entries := a.logs.GetLogs(a.logFilter, 0)
	newStyles(a.stdout).logs(a.stdout, entries, strings.ToUpper(string(a.logFilter)))
}
