package dashboard

//go:generate go tool mockery

import (
	"context"

	"urlclient/internal/domain"
)

type URLClient interface {
	GetShortenedURLs(ctx context.Context) domain.Result[[]domain.ShortenedURL]
	GetURLStatistics(ctx context.Context, shortCode string) domain.Result[domain.URLStatistics]
}

type StatsCache interface {
	Get(shortCode string) (domain.URLStatistics, bool)
	Set(shortCode string, stats domain.URLStatistics) bool
	Clear()
}

type Logger interface {
	Info(component, method, msg string, args ...any)
	Error(component, method, msg string, args ...any)
}
