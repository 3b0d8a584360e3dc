package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlclient/internal/api"
	"urlclient/internal/applog"
	"urlclient/internal/domain"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *applog.Service) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logs := applog.New(100)
	return api.New(srv.URL+"/api/", srv.Client(), logs), logs
}

func errorLogs(logs *applog.Service) []domain.LogEntry {
	return logs.GetLogs(domain.LevelError, 0)
}

// ShortenURL tests

func TestShortenURL_Success(t *testing.T) {
	period := 30
	client, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/shorten", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://example.com", body["originalUrl"])
		assert.InDelta(t, 30, body["validityPeriod"], 0)
		assert.Equal(t, "promo", body["preferredShortcode"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"1","originalUrl":"https://example.com","shortUrl":"http://s/promo","shortCode":"promo","createdAt":"2024-03-01T12:00:00Z","expiryDate":"2024-03-01T12:30:00Z","clickCount":0}`)
	})

	result := client.ShortenURL(context.Background(), domain.URLSubmission{
		OriginalURL:        "https://example.com",
		ValidityPeriod:     &period,
		PreferredShortcode: "promo",
	})

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "promo", result.Data.ShortCode)
	assert.Equal(t, "http://s/promo", result.Data.ShortURL)
	assert.True(t, result.Data.ExpiryDate.Valid())
	assert.Empty(t, errorLogs(logs))
}

func TestShortenURL_OmitsBlankOptionalFields(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "validityPeriod")
		assert.NotContains(t, body, "preferredShortcode")

		_, _ = io.WriteString(w, `{"shortCode":"abc123"}`)
	})

	result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "https://example.com"})

	require.True(t, result.Success)
	assert.Equal(t, "abc123", result.Data.ShortCode)
}

func TestShortenURL_ServerErrorMessage(t *testing.T) {
	client, logs := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"duplicate shortcode"}`)
	})

	result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "https://example.com"})

	assert.False(t, result.Success)
	assert.Equal(t, "duplicate shortcode", result.Error)

	entries := errorLogs(logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "URL shortening failed", entries[0].Message)
	assert.InDelta(t, 500, entries[0].Metadata["status"], 0)
}

func TestShortenURL_FallbackMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no body", body: ""},
		{name: "non json", body: "<html>bad gateway</html>"},
		{name: "blank error", body: `{"error":"  "}`},
		{name: "no error field", body: `{"message":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, tt.body)
			})

			result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "https://example.com"})

			assert.False(t, result.Success)
			assert.Equal(t, api.MsgShortenFailed, result.Error)
		})
	}
}

func TestShortenURL_BlankURLSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	client, logs := newClient(t, func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	})

	result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "   "})

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgURLRequired, result.Error)
	assert.Zero(t, calls.Load())
	assert.Len(t, errorLogs(logs), 1)
}

func TestShortenURL_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logs := applog.New(100)
	client := api.New(srv.URL, nil, logs)

	result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "https://example.com"})

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgNetworkError, result.Error)

	entries := errorLogs(logs)
	require.Len(t, entries, 1)
	assert.Equal(t, "Network error during URL shortening", entries[0].Message)
	assert.NotContains(t, entries[0].Metadata, "status")
}

func TestShortenURL_InvalidBody(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "not json")
	})

	result := client.ShortenURL(context.Background(), domain.URLSubmission{OriginalURL: "https://example.com"})

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgInvalidResponse, result.Error)
}

func TestShortenURL_CanceledContext(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.ShortenURL(ctx, domain.URLSubmission{OriginalURL: "https://example.com"})

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgNetworkError, result.Error)
}

// GetShortenedURLs tests

func TestGetShortenedURLs_Success(t *testing.T) {
	client, logs := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/urls", r.URL.Path)
		_, _ = io.WriteString(w, `[{"shortCode":"a1"},{"shortCode":"b2","isExpired":true}]`)
	})

	result := client.GetShortenedURLs(context.Background())

	require.True(t, result.Success)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "a1", result.Data[0].ShortCode)
	assert.True(t, result.Data[1].IsExpired)

	infos := logs.GetLogs(domain.LevelInfo, 1)
	require.Len(t, infos, 1)
	assert.Equal(t, "Successfully fetched shortened URLs", infos[0].Message)
	assert.InDelta(t, 2, infos[0].Metadata["count"], 0)
}

func TestGetShortenedURLs_Empty(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	result := client.GetShortenedURLs(context.Background())

	require.True(t, result.Success)
	assert.Empty(t, result.Data)
}

func TestGetShortenedURLs_Failure(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := client.GetShortenedURLs(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgListFailed, result.Error)
}

// GetURLStatistics tests

func TestGetURLStatistics_Success(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/promo", r.URL.Path)
		_, _ = io.WriteString(w, `{"shortenedUrl":{"shortCode":"promo","clickCount":2},"clickDetails":[{"id":"c1","timestamp":"2024-03-01T12:00:00Z","source":"direct"},{"id":"c2","timestamp":"2024-03-01T12:05:00Z","source":"twitter","location":"Berlin"}]}`)
	})

	result := client.GetURLStatistics(context.Background(), "promo")

	require.True(t, result.Success)
	assert.Equal(t, int64(2), result.Data.ShortenedURL.ClickCount)
	require.Len(t, result.Data.ClickDetails, 2)
	assert.Equal(t, "Berlin", result.Data.ClickDetails[1].Location)
}

func TestGetURLStatistics_EscapesCode(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/a%2Fb", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"shortenedUrl":{},"clickDetails":[]}`)
	})

	result := client.GetURLStatistics(context.Background(), "a/b")

	assert.True(t, result.Success)
}

func TestGetURLStatistics_NotFound(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"short code not found"}`)
	})

	result := client.GetURLStatistics(context.Background(), "missing")

	assert.False(t, result.Success)
	assert.Equal(t, "short code not found", result.Error)
}

func TestGetURLStatistics_BlankCode(t *testing.T) {
	var calls atomic.Int32
	client, _ := newClient(t, func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	})

	result := client.GetURLStatistics(context.Background(), "")

	assert.False(t, result.Success)
	assert.Equal(t, api.MsgShortCodeNeeded, result.Error)
	assert.Zero(t, calls.Load())
}
