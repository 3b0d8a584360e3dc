package validation

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"urlclient/internal/domain"
)

const (
	component = "validation"

	MaxURLLength        = 2048
	MaxValidityMinutes  = 525600
	MinShortcodeLength  = 3
	MaxShortcodeLength  = 20
	urlLogPreviewLength = 50
)

var shortcodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
}

type Logger interface {
	Debug(component, method, msg string, args ...any)
	Info(component, method, msg string, args ...any)
	Warn(component, method, msg string, args ...any)
}

type Validator struct {
	logger Logger
}

func New(logger Logger) *Validator {
	return &Validator{logger: logger}
}

func (v *Validator) ValidateURL(rawURL string) error {
	const method = "ValidateURL"
	v.logger.Debug(component, method, "Starting URL validation", "url", preview(rawURL))

	if strings.TrimSpace(rawURL) == "" {
		v.logger.Warn(component, method, "URL validation failed: empty URL")
		return &Error{Field: FieldURL, Kind: ErrEmptyInput, Message: "URL is required"}
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" {
		reason := "missing scheme"
		if err != nil {
			reason = err.Error()
		}
		v.logger.Warn(component, method, "URL validation failed: invalid format", "error", reason)
		return &Error{Field: FieldURL, Kind: ErrInvalidFormat, Message: "Please enter a valid URL"}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowedSchemes[scheme] {
		v.logger.Warn(component, method, "URL validation failed: invalid protocol", "protocol", scheme+":")
		return &Error{Field: FieldURL, Kind: ErrUnsupportedScheme, Message: "URL must use HTTP or HTTPS protocol"}
	}

	if parsed.Host == "" {
		v.logger.Warn(component, method, "URL validation failed: invalid format", "error", "missing host")
		return &Error{Field: FieldURL, Kind: ErrInvalidFormat, Message: "Please enter a valid URL"}
	}

	if len(rawURL) > MaxURLLength {
		v.logger.Warn(component, method, "URL validation failed: URL too long", "length", len(rawURL))
		return &Error{Field: FieldURL, Kind: ErrTooLong, Message: "URL is too long (maximum 2048 characters)"}
	}

	v.logger.Info(component, method, "URL validation successful")
	return nil
}

func (v *Validator) ValidateValidityPeriod(period string) error {
	const method = "ValidateValidityPeriod"
	v.logger.Debug(component, method, "Starting validity period validation", "period", period)

	trimmed := strings.TrimSpace(period)
	if trimmed == "" {
		v.logger.Info(component, method, "Validity period validation: empty period (optional field)")
		return nil
	}

	minutes, err := strconv.Atoi(trimmed)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			v.logger.Warn(component, method, "Validity period validation failed: exceeds maximum", "period", trimmed)
			return errExceedsMaximum()
		}
		v.logger.Warn(component, method, "Validity period validation failed: not a number", "period", period)
		return &Error{Field: FieldValidityPeriod, Kind: ErrNotANumber, Message: "Validity period must be a number"}
	}

	if minutes <= 0 {
		v.logger.Warn(component, method, "Validity period validation failed: non-positive number", "period", minutes)
		return &Error{Field: FieldValidityPeriod, Kind: ErrOutOfRange, Message: "Validity period must be greater than 0"}
	}

	if minutes > MaxValidityMinutes {
		v.logger.Warn(component, method, "Validity period validation failed: exceeds maximum", "period", minutes)
		return errExceedsMaximum()
	}

	v.logger.Info(component, method, "Validity period validation successful", "period", minutes)
	return nil
}

func (v *Validator) ValidateShortcode(shortcode string) error {
	const method = "ValidateShortcode"
	v.logger.Debug(component, method, "Starting shortcode validation", "shortcode", shortcode)

	if strings.TrimSpace(shortcode) == "" {
		v.logger.Info(component, method, "Shortcode validation: empty shortcode (optional field)")
		return nil
	}

	if !shortcodePattern.MatchString(shortcode) {
		v.logger.Warn(component, method, "Shortcode validation failed: invalid characters", "shortcode", shortcode)
		return &Error{
			Field:   FieldShortcode,
			Kind:    ErrInvalidCharacters,
			Message: "Shortcode can only contain letters, numbers, underscores, and hyphens",
		}
	}

	if len(shortcode) < MinShortcodeLength {
		v.logger.Warn(component, method, "Shortcode validation failed: too short",
			"shortcode", shortcode, "length", len(shortcode))
		return &Error{Field: FieldShortcode, Kind: ErrTooShort, Message: "Shortcode must be at least 3 characters long"}
	}

	if len(shortcode) > MaxShortcodeLength {
		v.logger.Warn(component, method, "Shortcode validation failed: too long",
			"shortcode", shortcode, "length", len(shortcode))
		return &Error{Field: FieldShortcode, Kind: ErrTooLong, Message: "Shortcode cannot exceed 20 characters"}
	}

	v.logger.Info(component, method, "Shortcode validation successful", "shortcode", shortcode)
	return nil
}

// ValidateDraft runs every field check on one form entry and collects all
// failures rather than stopping at the first.
func (v *Validator) ValidateDraft(draft domain.SubmissionDraft) error {
	var fieldErrs []*Error
	checks := []error{
		v.ValidateURL(draft.OriginalURL),
		v.ValidateValidityPeriod(draft.ValidityPeriod),
		v.ValidateShortcode(draft.PreferredShortcode),
	}
	for _, err := range checks {
		var fe *Error
		if errors.As(err, &fe) {
			fieldErrs = append(fieldErrs, fe)
		}
	}

	if len(fieldErrs) > 0 {
		return &DraftError{Errors: fieldErrs}
	}
	return nil
}

// ValidateBatch validates every non-blank draft. Blank drafts are skipped:
// they are never submitted.
func (v *Validator) ValidateBatch(drafts []domain.SubmissionDraft) error {
	const method = "ValidateBatch"
	v.logger.Info(component, method, "Validating all submissions", "submissionCount", len(drafts))

	var batchErrors []IndexedError
	for i, d := range drafts {
		if d.IsBlank() {
			continue
		}
		if err := v.ValidateDraft(d); err != nil {
			var de *DraftError
			if errors.As(err, &de) {
				batchErrors = append(batchErrors, IndexedError{Index: i, Err: de})
			}
		}
	}

	if len(batchErrors) > 0 {
		batchErr := &BatchValidationError{Errors: batchErrors}
		v.logger.Warn(component, method, "Validation failed for one or more submissions", "errorCount", batchErr.Count())
		return batchErr
	}

	v.logger.Info(component, method, "All submissions validated successfully")
	return nil
}

func errExceedsMaximum() *Error {
	return &Error{
		Field:   FieldValidityPeriod,
		Kind:    ErrOutOfRange,
		Message: "Validity period cannot exceed 1 year (525,600 minutes)",
	}
}

func preview(s string) string {
	if len(s) <= urlLogPreviewLength {
		return s
	}
	return s[:urlLogPreviewLength] + "..."
}
