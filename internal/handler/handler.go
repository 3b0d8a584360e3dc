package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"urlclient/internal/dashboard"
	"urlclient/internal/domain"
	"urlclient/internal/form"
	"urlclient/internal/validation"
)

const component = "handler"

const (
	msgFormFull         = "You can shorten at most %d URLs at a time"
	msgLastEntry        = "At least one URL entry is required"
	msgEntryNotFound    = "That URL entry no longer exists"
	msgSubmitInProgress = "A submission is already in progress"
	msgFixErrors        = "Please fix the highlighted errors before submitting"
	msgUnexpected       = "An unexpected error occurred"
	msgInvalidBody      = "Invalid form data"
	msgUnknownCode      = "That short URL is not on the dashboard"
	msgInvalidLevel     = "Unknown log level"
	msgInvalidLimit     = "Limit must be a non-negative number"
)

var respHealthOK = map[string]string{"status": "ok"}

type Handler struct {
	form      Form
	dashboard Dashboard
	logs      LogStore
	logger    *slog.Logger
}

func New(form Form, dashboard Dashboard, logs LogStore, logger *slog.Logger) *Handler {
	return &Handler{
		form:      form,
		dashboard: dashboard,
		logs:      logs,
		logger:    logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)

	e.GET("/", h.ShortenerPage)
	e.POST("/entries", h.AddEntry)
	e.POST("/entries/:id", h.UpdateEntry)
	e.POST("/entries/:id/delete", h.RemoveEntry)
	e.POST("/submit", h.Submit)

	e.GET("/stats", h.StatsPage)
	e.POST("/stats/refresh", h.RefreshStats)
	e.POST("/stats/:code/toggle", h.ToggleStats)

	e.GET("/logs", h.LogsPage)
	e.POST("/logs/clear", h.ClearLogs)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, respHealthOK)
}

type shortenerPage struct {
	Title  string
	Notice string
	Form   form.Snapshot
}

func (h *Handler) ShortenerPage(c echo.Context) error {
	h.logs.Info(component, "ShortenerPage", "UrlShortener page viewed")
	return h.renderShortener(c, http.StatusOK, "")
}

func (h *Handler) AddEntry(c echo.Context) error {
	if _, err := h.form.Add(); err != nil {
		return h.handleFormError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) UpdateEntry(c echo.Context) error {
	var draft domain.SubmissionDraft
	if err := c.Bind(&draft); err != nil {
		h.logger.Error("failed to bind form entry", slog.String("error", err.Error()))
		return h.renderShortener(c, http.StatusBadRequest, msgInvalidBody)
	}

	if err := h.form.Update(c.Param("id"), draft); err != nil {
		return h.handleFormError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) RemoveEntry(c echo.Context) error {
	if err := h.form.Remove(c.Param("id")); err != nil {
		return h.handleFormError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Submit blocks until every backend call of the batch returned. Partial
// failures are reported through the form banner, not the status code.
func (h *Handler) Submit(c echo.Context) error {
	if _, err := h.form.Submit(c.Request().Context()); err != nil {
		return h.handleFormError(c, err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

type statsPage struct {
	Title  string
	Notice string
	View   dashboard.View
}

func (h *Handler) StatsPage(c echo.Context) error {
	h.logs.Info(component, "StatsPage", "Statistics page viewed")

	if !h.dashboard.Loaded() {
		// The failure is kept as the dashboard banner.
		_ = h.dashboard.Load(c.Request().Context())
	}
	return h.renderStats(c, http.StatusOK, "")
}

func (h *Handler) RefreshStats(c echo.Context) error {
	_ = h.dashboard.Refresh(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/stats")
}

func (h *Handler) ToggleStats(c echo.Context) error {
	_, err := h.dashboard.Toggle(c.Request().Context(), c.Param("code"))
	if errors.Is(err, dashboard.ErrUnknownCode) {
		return h.renderStats(c, http.StatusNotFound, msgUnknownCode)
	}
	// Fetch failures are rendered on the expanded card.
	return c.Redirect(http.StatusSeeOther, "/stats")
}

type logsPage struct {
	Title   string
	Notice  string
	Level   string
	Limit   int
	Levels  []domain.LogLevel
	Entries []domain.LogEntry
	Total   int
}

func (h *Handler) LogsPage(c echo.Context) error {
	page := logsPage{
		Title:  "Logs",
		Levels: []domain.LogLevel{domain.LevelDebug, domain.LevelInfo, domain.LevelWarn, domain.LevelError},
	}

	var level domain.LogLevel
	if raw := strings.TrimSpace(c.QueryParam("level")); raw != "" {
		parsed, err := domain.ParseLogLevel(raw)
		if err != nil {
			return h.logsError(c, page, msgInvalidLevel)
		}
		level = parsed
		page.Level = string(parsed)
	}

	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return h.logsError(c, page, msgInvalidLimit)
		}
		page.Limit = limit
	}

	page.Entries = h.logs.GetLogs(level, page.Limit)
	page.Total = h.logs.Len()

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, page.Entries)
	}
	return c.Render(http.StatusOK, "logs", page)
}

func (h *Handler) ClearLogs(c echo.Context) error {
	h.logs.ClearLogs()
	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, "/logs")
}

func (h *Handler) logsError(c echo.Context, page logsPage, msg string) error {
	if wantsJSON(c) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	page.Notice = msg
	page.Total = h.logs.Len()
	return c.Render(http.StatusBadRequest, "logs", page)
}

func (h *Handler) renderShortener(c echo.Context, status int, notice string) error {
	return c.Render(status, "shortener", shortenerPage{
		Title:  "Shorten",
		Notice: notice,
		Form:   h.form.Snapshot(),
	})
}

func (h *Handler) renderStats(c echo.Context, status int, notice string) error {
	return c.Render(status, "stats", statsPage{
		Title:  "Statistics",
		Notice: notice,
		View:   h.dashboard.View(c.Request().Context()),
	})
}

func (h *Handler) handleFormError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, form.ErrFormFull):
		return h.renderShortener(c, http.StatusConflict, fmt.Sprintf(msgFormFull, h.form.Snapshot().MaxEntries))
	case errors.Is(err, form.ErrLastEntry):
		return h.renderShortener(c, http.StatusConflict, msgLastEntry)
	case errors.Is(err, form.ErrEntryNotFound):
		return h.renderShortener(c, http.StatusNotFound, msgEntryNotFound)
	case errors.Is(err, form.ErrSubmitInProgress):
		return h.renderShortener(c, http.StatusConflict, msgSubmitInProgress)
	case errors.Is(err, form.ErrNothingToSubmit):
		// The form banner already carries the message.
		return h.renderShortener(c, http.StatusUnprocessableEntity, "")
	default:
		var batchErr *validation.BatchValidationError
		if errors.As(err, &batchErr) {
			return h.renderShortener(c, http.StatusUnprocessableEntity, msgFixErrors)
		}
		h.logger.Error("form operation failed", slog.String("error", err.Error()))
		return h.renderShortener(c, http.StatusInternalServerError, msgUnexpected)
	}
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
