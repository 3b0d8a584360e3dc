package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/net/netutil"

	"urlclient/internal/handler"
	custommiddleware "urlclient/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shortener, statistics and log pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides SERVER_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides SERVER_PORT)")
	return cmd
}

// buildServer wires the UI pages into an echo instance.
func (a *app) buildServer() (*echo.Echo, error) {
	f, err := a.newForm()
	if err != nil {
		return nil, err
	}
	d, err := a.newDashboard()
	if err != nil {
		return nil, err
	}
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	h := handler.New(f, d, a.logs, a.logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(a.cfg.Server.BodyLimit))
	e.Use(custommiddleware.RequestLog(a.logs, "/logs", "/health"))
	e.Use(custommiddleware.RateLimit(&a.cfg.RateLimit, a.logs))

	h.Register(e)
	return e, nil
}

func (a *app) serve(ctx context.Context) error {
	e, err := a.buildServer()
	if err != nil {
		return err
	}

	addr := a.cfg.Server.Addr()
	a.logger.Info("starting HTTP server",
		slog.String("addr", addr),
		slog.String("api", a.client.BaseURL()),
		slog.Int("max_connections", a.cfg.Server.MaxConnections))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create HTTP listener: %w", err)
	}
	if a.cfg.Server.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, a.cfg.Server.MaxConnections)
	}
	fmt.Fprintf(a.stdout, "Serving on http://%s\n", listener.Addr())

	server := &http.Server{
		Handler:        e,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 14, // 16KB
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	case <-ctx.Done():
	}
	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
