package form

//go:generate go tool mockery

import (
	"context"

	"urlclient/internal/domain"
)

type Shortener interface {
	ShortenURL(ctx context.Context, submission domain.URLSubmission) domain.Result[domain.ShortenedURL]
}

type Validator interface {
	ValidateDraft(draft domain.SubmissionDraft) error
	ValidateBatch(drafts []domain.SubmissionDraft) error
}

type IDGenerator interface {
	Next() (string, error)
}

type Logger interface {
	Debug(component, method, msg string, args ...any)
	Info(component, method, msg string, args ...any)
	Warn(component, method, msg string, args ...any)
	Error(component, method, msg string, args ...any)
}
