package applog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"urlclient/internal/config"
	"urlclient/internal/domain"
)

// HTTPForwarder posts log entries to {baseURL}/logs from a bounded queue.
// Delivery is best effort: a full queue drops the entry and every transport
// or collector failure is swallowed.
type HTTPForwarder struct {
	endpoint     string
	client       *http.Client
	logger       *slog.Logger
	cfg          *config.LogForwardConfig
	queue        chan domain.LogEntry
	wg           sync.WaitGroup
	startOnce    sync.Once
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

func NewHTTPForwarder(baseURL string, cfg *config.LogForwardConfig, logger *slog.Logger) *HTTPForwarder {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &HTTPForwarder{
		endpoint:   strings.TrimRight(baseURL, "/") + "/logs",
		client:     &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger:     logger,
		cfg:        cfg,
		queue:      make(chan domain.LogEntry, cfg.QueueSize),
		shutdownCh: make(chan struct{}),
	}
}

func (f *HTTPForwarder) Forward(entry domain.LogEntry) {
	select {
	case <-f.shutdownCh:
		return
	default:
	}

	select {
	case f.queue <- entry:
	default:
		f.logger.Debug("log forward queue full, dropping entry",
			slog.String("component", entry.Component),
			slog.String("method", entry.Method))
	}
}

func (f *HTTPForwarder) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		f.wg.Add(f.cfg.Workers)
		for range f.cfg.Workers {
			go f.run(ctx)
		}

		f.logger.Debug("log forwarder started",
			slog.String("endpoint", f.endpoint),
			slog.Int("workers", f.cfg.Workers),
			slog.Int("queue_size", f.cfg.QueueSize))
	})
}

// Close stops the workers after a bounded attempt to deliver what is still
// queued. Forward calls after Close are dropped.
func (f *HTTPForwarder) Close() {
	f.shutdownOnce.Do(func() {
		close(f.shutdownCh)
		f.wg.Wait()
		f.client.CloseIdleConnections()
	})
}

func (f *HTTPForwarder) run(ctx context.Context) {
	defer f.wg.Done()

	for {
		select {
		case <-ctx.Done():
			f.drain()
			return
		case <-f.shutdownCh:
			f.drain()
			return
		case entry := <-f.queue:
			f.send(ctx, entry)
		}
	}
}

func (f *HTTPForwarder) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), f.cfg.Timeout)
	defer cancel()

	for {
		select {
		case entry := <-f.queue:
			f.send(ctx, entry)
		default:
			return
		}
	}
}

func (f *HTTPForwarder) send(ctx context.Context, entry domain.LogEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		f.logger.Debug("failed to encode log entry", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		f.logger.Debug("failed to build log request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("log forwarding failed", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Debug("log collector rejected entry", slog.Int("status", resp.StatusCode))
	}
}
