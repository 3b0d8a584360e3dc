package applog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"urlclient/internal/domain"
)

const (
	DefaultCapacity = 1000

	component = "applog"
	badKey    = "!BADKEY"
)

// Forwarder ships entries to a remote collector. Implementations must not
// block the caller and must not report failures.
type Forwarder interface {
	Forward(entry domain.LogEntry)
}

type Option func(*Service)

func WithForwarder(f Forwarder) Option {
	return func(s *Service) {
		s.forwarder = f
	}
}

// WithLogger mirrors every entry into logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service keeps the most recent log entries of the client in memory and
// hands each one to a Forwarder. Entries are treated as immutable once
// recorded; callers must not modify the Metadata of returned entries.
type Service struct {
	mu        sync.Mutex
	buf       *ring
	forwarder Forwarder
	logger    *slog.Logger
	now       func() time.Time
}

func New(capacity int, opts ...Option) *Service {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &Service{
		buf:    newRing(capacity),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Debug(component, method, msg string, args ...any) {
	s.record(domain.LevelDebug, component, method, msg, args)
}

func (s *Service) Info(component, method, msg string, args ...any) {
	s.record(domain.LevelInfo, component, method, msg, args)
}

func (s *Service) Warn(component, method, msg string, args ...any) {
	s.record(domain.LevelWarn, component, method, msg, args)
}

func (s *Service) Error(component, method, msg string, args ...any) {
	s.record(domain.LevelError, component, method, msg, args)
}

// GetLogs returns buffered entries newest first. An empty level matches every
// entry; a non-positive limit returns all matches.
func (s *Service) GetLogs(level domain.LogLevel, limit int) []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LogEntry, 0, s.buf.len())
	s.buf.each(func(e domain.LogEntry) bool {
		if level != "" && e.Level != level {
			return true
		}
		out = append(out, e)
		return limit <= 0 || len(out) < limit
	})
	return out
}

func (s *Service) ClearLogs() {
	s.Info(component, "ClearLogs", "Clearing application logs")

	s.mu.Lock()
	s.buf.reset()
	s.mu.Unlock()
}

func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.len()
}

func (s *Service) record(level domain.LogLevel, component, method, msg string, args []any) {
	entry := domain.LogEntry{
		Timestamp: s.now().UTC(),
		Level:     level,
		Component: component,
		Method:    method,
		Message:   msg,
		Metadata:  metadata(args),
	}

	s.mu.Lock()
	s.buf.push(entry)
	s.mu.Unlock()

	attrs := []slog.Attr{
		slog.String("component", component),
		slog.String("method", method),
	}
	if entry.Metadata != nil {
		attrs = append(attrs, slog.Any("metadata", entry.Metadata))
	}
	s.logger.LogAttrs(context.Background(), slogLevel(level), msg, attrs...)

	if s.forwarder != nil {
		s.forwarder.Forward(entry)
	}
}

func slogLevel(level domain.LogLevel) slog.Level {
	switch level {
	case domain.LevelDebug:
		return slog.LevelDebug
	case domain.LevelWarn:
		return slog.LevelWarn
	case domain.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// metadata turns slog-style key/value args into a map detached from the
// caller's values.
func metadata(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}

	m := make(map[string]any, len(args)/2+1)
	for len(args) > 0 {
		switch key := args[0].(type) {
		case slog.Attr:
			m[key.Key] = key.Value.Any()
			args = args[1:]
		case string:
			if len(args) == 1 {
				m[badKey] = key
				args = nil
				continue
			}
			m[key] = args[1]
			args = args[2:]
		default:
			m[badKey] = key
			args = args[1:]
		}
	}

	return deepCopy(m)
}

func deepCopy(m map[string]any) map[string]any {
	raw, err := json.Marshal(m)
	if err == nil {
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err == nil {
			return out
		}
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}
