package form

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"urlclient/internal/domain"
	"urlclient/internal/validation"
)

const (
	component         = "form"
	DefaultMaxEntries = 5
)

var (
	ErrFormFull         = errors.New("maximum number of URLs reached")
	ErrLastEntry        = errors.New("at least one URL entry is required")
	ErrEntryNotFound    = errors.New("entry not found")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNothingToSubmit  = errors.New("nothing to submit")
)

const MsgNothingToSubmit = "Please enter at least one URL to shorten"

type entry struct {
	id     string
	draft  domain.SubmissionDraft
	errors map[validation.Field]string
}

// Failure is one backend rejection from a batch.
type Failure struct {
	EntryID     string
	OriginalURL string
	Message     string
}

type Report struct {
	Submitted int
	Results   []domain.ShortenedURL
	Failures  []Failure
}

func (r Report) Succeeded() int {
	return len(r.Results)
}

// Form is the shortener page state: a bounded list of drafts, the results
// of the last batch and a page-level banner. It is safe for concurrent use.
type Form struct {
	shortener  Shortener
	validator  Validator
	ids        IDGenerator
	logger     Logger
	maxEntries int

	mu         sync.Mutex
	entries    []*entry
	results    []domain.ShortenedURL
	banner     string
	submitting bool
}

func New(maxEntries int, shortener Shortener, validator Validator, ids IDGenerator, logger Logger) (*Form, error) {
	if maxEntries <= 0 || maxEntries > DefaultMaxEntries {
		maxEntries = DefaultMaxEntries
	}

	f := &Form{
		shortener:  shortener,
		validator:  validator,
		ids:        ids,
		logger:     logger,
		maxEntries: maxEntries,
	}

	first, err := f.newEntry()
	if err != nil {
		return nil, err
	}
	f.entries = []*entry{first}
	return f, nil
}

func (f *Form) MaxEntries() int {
	return f.maxEntries
}

func (f *Form) Add() (string, error) {
	const method = "Add"

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) >= f.maxEntries {
		f.logger.Warn(component, method, "Cannot add more forms: maximum reached", "maxForms", f.maxEntries)
		return "", ErrFormFull
	}

	e, err := f.newEntry()
	if err != nil {
		return "", err
	}

	f.logger.Info(component, method, "Adding new URL form", "currentCount", len(f.entries))
	f.entries = append(f.entries, e)
	return e.id, nil
}

func (f *Form) Remove(id string) error {
	const method = "Remove"

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	if len(f.entries) == 1 {
		f.logger.Warn(component, method, "Cannot remove the last URL form")
		return ErrLastEntry
	}

	f.logger.Info(component, method, "Removing URL form", "index", i, "remainingForms", len(f.entries)-1)
	f.entries = slices.Delete(f.entries, i, i+1)
	return nil
}

// Update replaces the draft of one entry. Any errors shown for the entry and
// the page banner are cleared.
func (f *Form) Update(id string, draft domain.SubmissionDraft) error {
	const method = "Update"

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return ErrEntryNotFound
	}

	f.logger.Debug(component, method, "URL submission changed",
		"index", i,
		"hasUrl", strings.TrimSpace(draft.OriginalURL) != "",
		"hasValidityPeriod", strings.TrimSpace(draft.ValidityPeriod) != "",
		"hasShortcode", strings.TrimSpace(draft.PreferredShortcode) != "")

	f.entries[i].draft = draft
	f.entries[i].errors = nil
	f.banner = ""
	return nil
}

// Submit validates every non-blank entry and, if all are valid, shortens
// them concurrently. Backend calls run to completion even if ctx is
// canceled; results are published only after every call returned.
//
// Entries that were shortened are removed from the form. Entries that failed
// stay in place with the backend message attached.
func (f *Form) Submit(ctx context.Context) (Report, error) {
	const method = "Submit"

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Report{}, ErrSubmitInProgress
	}

	f.logger.Info(component, method, "Starting bulk URL shortening process", "submissionCount", len(f.entries))

	drafts := make([]domain.SubmissionDraft, len(f.entries))
	for i, e := range f.entries {
		drafts[i] = e.draft
	}

	if err := f.validator.ValidateBatch(drafts); err != nil {
		f.applyValidationErrors(err)
		f.mu.Unlock()
		return Report{}, err
	}

	var pending []*entry
	for _, e := range f.entries {
		if !e.draft.IsBlank() {
			pending = append(pending, &entry{id: e.id, draft: e.draft})
		}
	}
	if len(pending) == 0 {
		f.logger.Warn(component, method, "No valid URLs to submit")
		f.banner = MsgNothingToSubmit
		f.mu.Unlock()
		return Report{}, ErrNothingToSubmit
	}

	f.submitting = true
	f.banner = ""
	f.results = nil
	f.mu.Unlock()

	outcomes := f.shortenAll(context.WithoutCancel(ctx), pending)

	f.mu.Lock()
	defer f.mu.Unlock()
	report := f.publish(pending, outcomes)
	f.submitting = false
	return report, nil
}

func (f *Form) shortenAll(ctx context.Context, pending []*entry) []domain.Result[domain.ShortenedURL] {
	const method = "Submit"

	outcomes := make([]domain.Result[domain.ShortenedURL], len(pending))

	var g errgroup.Group
	g.SetLimit(f.maxEntries)
	for i, e := range pending {
		g.Go(func() error {
			f.logger.Info(component, method, "Processing URL submission", "index", i, "originalUrl", e.draft.OriginalURL)

			submission, err := e.draft.Submission()
			if err != nil {
				outcomes[i] = domain.Fail[domain.ShortenedURL](err.Error())
				return nil
			}

			res := f.shortener.ShortenURL(ctx, submission)
			if !res.Success && res.Error == "" {
				res.Error = "Failed to shorten URL"
			}
			outcomes[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (f *Form) publish(pending []*entry, outcomes []domain.Result[domain.ShortenedURL]) Report {
	const method = "Submit"

	report := Report{Submitted: len(pending)}
	succeeded := make(map[string]bool, len(pending))

	for i, res := range outcomes {
		e := pending[i]
		if res.Success {
			f.logger.Info(component, method, "URL shortened successfully", "index", i, "shortCode", res.Data.ShortCode)
			report.Results = append(report.Results, res.Data)
			succeeded[e.id] = true
			continue
		}

		f.logger.Error(component, method, "Failed to shorten URL", "index", i, "error", res.Error, "originalUrl", e.draft.OriginalURL)
		report.Failures = append(report.Failures, Failure{EntryID: e.id, OriginalURL: e.draft.OriginalURL, Message: res.Error})
		if cur := f.find(e.id); cur != nil {
			cur.errors = map[validation.Field]string{validation.FieldURL: res.Error}
		}
	}

	f.results = report.Results

	switch len(report.Failures) {
	case 0:
		f.logger.Info(component, method, "Bulk URL shortening completed successfully",
			"successCount", report.Succeeded(), "totalSubmitted", report.Submitted)
		if e, err := f.newEntry(); err == nil {
			f.entries = []*entry{e}
			return report
		}
	case 1:
		f.banner = report.Failures[0].Message
	default:
		f.banner = fmt.Sprintf("%d of %d URLs could not be shortened", len(report.Failures), report.Submitted)
	}

	if len(report.Failures) > 0 {
		f.logger.Error(component, method, "Error during bulk URL shortening",
			"failureCount", len(report.Failures), "successCount", report.Succeeded())
	}

	f.entries = slices.DeleteFunc(f.entries, func(e *entry) bool { return succeeded[e.id] })
	if len(f.entries) == 0 {
		if e, err := f.newEntry(); err == nil {
			f.entries = []*entry{e}
		}
	}
	return report
}

func (f *Form) applyValidationErrors(err error) {
	var batchErr *validation.BatchValidationError
	if !errors.As(err, &batchErr) {
		return
	}

	for _, e := range f.entries {
		e.errors = nil
	}
	for _, ie := range batchErr.Errors {
		if ie.Index < 0 || ie.Index >= len(f.entries) {
			continue
		}
		errs := make(map[validation.Field]string, len(ie.Err.Errors))
		for _, fe := range ie.Err.Errors {
			errs[fe.Field] = fe.Message
		}
		f.entries[ie.Index].errors = errs
	}
}

func (f *Form) newEntry() (*entry, error) {
	id, err := f.ids.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entry id: %w", err)
	}
	return &entry{id: id}, nil
}

func (f *Form) indexOf(id string) int {
	return slices.IndexFunc(f.entries, func(e *entry) bool { return e.id == id })
}

func (f *Form) find(id string) *entry {
	if i := f.indexOf(id); i >= 0 {
		return f.entries[i]
	}
	return nil
}
