package handler

import (
	"context"

	"urlclient/internal/dashboard"
	"urlclient/internal/domain"
	"urlclient/internal/form"
)

type Form interface {
	Add() (string, error)
	Remove(id string) error
	Update(id string, draft domain.SubmissionDraft) error
	Submit(ctx context.Context) (form.Report, error)
	Snapshot() form.Snapshot
}

type Dashboard interface {
	Loaded() bool
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Toggle(ctx context.Context, shortCode string) (bool, error)
	View(ctx context.Context) dashboard.View
}

type LogStore interface {
	Info(component, method, msg string, args ...any)
	GetLogs(level domain.LogLevel, limit int) []domain.LogEntry
	ClearLogs()
	Len() int
}
