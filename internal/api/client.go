package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"urlclient/internal/domain"
)

const (
	component        = "api"
	requestIDHeader  = "X-Request-ID"
	maxResponseBytes = 4 << 20
	defaultTimeout   = 10 * time.Second
)

const (
	MsgNetworkError    = "Network error occurred. Please check your connection."
	MsgInvalidResponse = "Received an invalid response from the server"
	MsgURLRequired     = "URL is required"
	MsgShortCodeNeeded = "Short code is required"
	MsgShortenFailed   = "Failed to shorten URL"
	MsgListFailed      = "Failed to fetch URLs"
	MsgStatsFailed     = "Failed to fetch statistics"
)

type Logger interface {
	Info(component, method, msg string, args ...any)
	Error(component, method, msg string, args ...any)
}

// Client talks to the shortening backend. Every operation resolves to a
// domain.Result: HTTP failures and transport failures are folded into the
// same envelope and nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
}

func New(baseURL string, httpClient *http.Client, logger Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
	logger.Info(component, "New", "API client initialized", "apiBaseUrl", c.baseURL)
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ShortenURL(ctx context.Context, submission domain.URLSubmission) domain.Result[domain.ShortenedURL] {
	const method = "ShortenURL"

	if strings.TrimSpace(submission.OriginalURL) == "" {
		c.logger.Error(component, method, "Refusing to submit an empty URL")
		return domain.Fail[domain.ShortenedURL](MsgURLRequired)
	}

	c.logger.Info(component, method, "Initiating URL shortening request",
		"originalUrl", submission.OriginalURL,
		"hasCustomShortcode", submission.PreferredShortcode != "",
		"validityPeriod", submission.ValidityPeriod)

	data, requestID, err := call[domain.ShortenedURL](ctx, c, http.MethodPost, "/shorten", submission, MsgShortenFailed)
	if err != nil {
		c.logFailure(method, err, requestID, "URL shortening failed", "Network error during URL shortening",
			"originalUrl", submission.OriginalURL)
		return domain.Fail[domain.ShortenedURL](err.message)
	}

	c.logger.Info(component, method, "URL shortened successfully",
		"requestId", requestID,
		"shortCode", data.ShortCode,
		"originalUrl", submission.OriginalURL)
	return domain.Ok(data)
}

func (c *Client) GetShortenedURLs(ctx context.Context) domain.Result[[]domain.ShortenedURL] {
	const method = "GetShortenedURLs"

	c.logger.Info(component, method, "Fetching shortened URLs list")

	data, requestID, err := call[[]domain.ShortenedURL](ctx, c, http.MethodGet, "/urls", nil, MsgListFailed)
	if err != nil {
		c.logFailure(method, err, requestID, "Failed to fetch shortened URLs", "Network error fetching URLs")
		return domain.Fail[[]domain.ShortenedURL](err.message)
	}

	c.logger.Info(component, method, "Successfully fetched shortened URLs",
		"requestId", requestID,
		"count", len(data))
	return domain.Ok(data)
}

func (c *Client) GetURLStatistics(ctx context.Context, shortCode string) domain.Result[domain.URLStatistics] {
	const method = "GetURLStatistics"

	if strings.TrimSpace(shortCode) == "" {
		c.logger.Error(component, method, "Refusing to fetch statistics without a short code")
		return domain.Fail[domain.URLStatistics](MsgShortCodeNeeded)
	}

	c.logger.Info(component, method, "Fetching URL statistics", "shortCode", shortCode)

	path := "/stats/" + url.PathEscape(shortCode)
	data, requestID, err := call[domain.URLStatistics](ctx, c, http.MethodGet, path, nil, MsgStatsFailed)
	if err != nil {
		c.logFailure(method, err, requestID, "Failed to fetch URL statistics", "Network error fetching statistics",
			"shortCode", shortCode)
		return domain.Fail[domain.URLStatistics](err.message)
	}

	c.logger.Info(component, method, "Successfully fetched URL statistics",
		"requestId", requestID,
		"shortCode", shortCode,
		"clickCount", len(data.ClickDetails))
	return domain.Ok(data)
}

func (c *Client) logFailure(method string, err *callError, requestID, httpMsg, networkMsg string, args ...any) {
	msg := httpMsg
	if err.network {
		msg = networkMsg
	}

	args = append(args, "requestId", requestID, "error", err.Error())
	if err.status != 0 {
		args = append(args, "status", err.status)
	}
	c.logger.Error(component, method, msg, args...)
}

type callError struct {
	network bool
	status  int
	message string
	cause   error
}

func (e *callError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func call[T any](ctx context.Context, c *Client, method, path string, body any, fallback string) (T, string, *callError) {
	var zero T
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return zero, requestID, &callError{message: fallback, cause: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, requestID, &callError{message: fallback, cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, requestID, &callError{network: true, message: MsgNetworkError, cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, requestID, &callError{network: true, message: MsgNetworkError, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return zero, requestID, &callError{status: resp.StatusCode, message: serverMessage(raw, fallback)}
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return zero, requestID, &callError{status: resp.StatusCode, message: MsgInvalidResponse, cause: err}
	}
	return data, requestID, nil
}

// serverMessage extracts {"error": "..."} from a failure body.
func serverMessage(raw []byte, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || strings.TrimSpace(body.Error) == "" {
		return fallback
	}
	return body.Error
}
