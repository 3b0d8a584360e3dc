package applog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"urlclient/internal/applog"
	"urlclient/internal/config"
	"urlclient/internal/domain"
)

func forwardConfig() *config.LogForwardConfig {
	return &config.LogForwardConfig{
		Enabled:   true,
		QueueSize: 16,
		Workers:   2,
		Timeout:   500 * time.Millisecond,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHTTPForwarder_PostsEntries(t *testing.T) {
	defer goleak.VerifyNone(t)

	received := make(chan domain.LogEntry, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/logs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var entry domain.LogEntry
		if err := json.NewDecoder(r.Body).Decode(&entry); err == nil {
			received <- entry
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	fwd := applog.NewHTTPForwarder(srv.URL+"/api/", forwardConfig(), discardLogger())
	fwd.Start(context.Background())

	s := applog.New(10, applog.WithForwarder(fwd))
	s.Info("api", "ShortenURL", "URL shortened successfully", "shortCode", "abc123")

	select {
	case entry := <-received:
		assert.Equal(t, domain.LevelInfo, entry.Level)
		assert.Equal(t, "URL shortened successfully", entry.Message)
		assert.Equal(t, "abc123", entry.Metadata["shortCode"])
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not forwarded")
	}

	fwd.Close()
}

func TestHTTPForwarder_SwallowsCollectorErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	hits := make(chan struct{}, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		http.Error(w, `{"error":"ingestion down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	fwd := applog.NewHTTPForwarder(srv.URL, forwardConfig(), discardLogger())
	fwd.Start(context.Background())

	s := applog.New(10, applog.WithForwarder(fwd))
	assert.NotPanics(t, func() {
		s.Error("c", "m", "first")
		s.Error("c", "m", "second")
	})

	for range 2 {
		select {
		case <-hits:
		case <-time.After(2 * time.Second):
			t.Fatal("collector was not called")
		}
	}

	fwd.Close()
	assert.Equal(t, 2, s.Len())
}

func TestHTTPForwarder_UnreachableEndpointNeverBlocks(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	unreachable := srv.URL
	srv.Close()

	fwd := applog.NewHTTPForwarder(unreachable, forwardConfig(), discardLogger())
	fwd.Start(context.Background())

	s := applog.New(100, applog.WithForwarder(fwd))

	done := make(chan struct{})
	go func() {
		for range 50 {
			s.Warn("c", "m", "still logging")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logging blocked on an unreachable collector")
	}

	fwd.Close()
	assert.Equal(t, 50, s.Len())
}

func TestHTTPForwarder_DropsWhenQueueFull(t *testing.T) {
	cfg := forwardConfig()
	cfg.QueueSize = 1

	fwd := applog.NewHTTPForwarder("http://127.0.0.1:0", cfg, discardLogger())

	start := time.Now()
	for range 100 {
		fwd.Forward(domain.LogEntry{Level: domain.LevelInfo, Message: "queued"})
	}
	assert.Less(t, time.Since(start), time.Second)

	fwd.Close()
}

func TestHTTPForwarder_ForwardAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	fwd := applog.NewHTTPForwarder("http://127.0.0.1:0", forwardConfig(), discardLogger())
	fwd.Start(context.Background())
	fwd.Close()

	assert.NotPanics(t, func() {
		fwd.Forward(domain.LogEntry{Message: "late"})
	})
	fwd.Close()
}

func TestHTTPForwarder_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	fwd := applog.NewHTTPForwarder("http://127.0.0.1:0", forwardConfig(), discardLogger())
	fwd.Start(ctx)

	cancel()
	fwd.Close()

	require.NotPanics(t, func() {
		fwd.Forward(domain.LogEntry{Message: "after cancel"})
	})
}
