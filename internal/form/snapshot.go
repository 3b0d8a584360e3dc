package form

import (
	"errors"
	"strings"

	"urlclient/internal/domain"
	"urlclient/internal/validation"
)

type EntryView struct {
	ID             string
	Number         int
	Draft          domain.SubmissionDraft
	URLError       string
	PeriodError    string
	ShortcodeError string
}

func (e EntryView) HasErrors() bool {
	return e.URLError != "" || e.PeriodError != "" || e.ShortcodeError != ""
}

type Snapshot struct {
	Entries    []EntryView
	Results    []domain.ShortenedURL
	Banner     string
	Submitting bool
	MaxEntries int
	Pending    int
}

func (s Snapshot) CanAdd() bool {
	return len(s.Entries) < s.MaxEntries
}

func (s Snapshot) CanRemove() bool {
	return len(s.Entries) > 1
}

// Snapshot returns a copy of the form for rendering. Errors recorded by the
// last submit take precedence; otherwise fields that hold text are checked
// on the spot so problems show up while the user is still typing.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Entries:    make([]EntryView, 0, len(f.entries)),
		Results:    append([]domain.ShortenedURL(nil), f.results...),
		Banner:     f.banner,
		Submitting: f.submitting,
		MaxEntries: f.maxEntries,
	}

	for i, e := range f.entries {
		view := EntryView{ID: e.id, Number: i + 1, Draft: e.draft}
		if !e.draft.IsBlank() {
			snap.Pending++
		}

		errs := e.errors
		if errs == nil {
			errs = f.liveErrors(e.draft)
		}
		view.URLError = errs[validation.FieldURL]
		view.PeriodError = errs[validation.FieldValidityPeriod]
		view.ShortcodeError = errs[validation.FieldShortcode]

		snap.Entries = append(snap.Entries, view)
	}
	return snap
}

func (f *Form) liveErrors(draft domain.SubmissionDraft) map[validation.Field]string {
	if draft.IsBlank() && strings.TrimSpace(draft.ValidityPeriod) == "" && strings.TrimSpace(draft.PreferredShortcode) == "" {
		return nil
	}

	var de *validation.DraftError
	if !errors.As(f.validator.ValidateDraft(draft), &de) {
		return nil
	}

	errs := make(map[validation.Field]string, len(de.Errors))
	for _, fe := range de.Errors {
		if fe.Field == validation.FieldURL && draft.IsBlank() {
			continue
		}
		errs[fe.Field] = fe.Message
	}
	return errs
}
