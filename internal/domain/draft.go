package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SubmissionDraft is a form entry exactly as typed by the user.
type SubmissionDraft struct {
	OriginalURL        string `json:"originalUrl" form:"originalUrl"`
	ValidityPeriod     string `json:"validityPeriod" form:"validityPeriod"`
	PreferredShortcode string `json:"preferredShortcode" form:"preferredShortcode"`
}

func (d SubmissionDraft) IsBlank() bool {
	return strings.TrimSpace(d.OriginalURL) == ""
}

// Submission converts a validated draft into the request body sent to the
// backend. Optional fields left blank are omitted.
func (d SubmissionDraft) Submission() (URLSubmission, error) {
	sub := URLSubmission{
		OriginalURL:        strings.TrimSpace(d.OriginalURL),
		PreferredShortcode: strings.TrimSpace(d.PreferredShortcode),
	}

	if period := strings.TrimSpace(d.ValidityPeriod); period != "" {
		minutes, err := strconv.Atoi(period)
		if err != nil {
			return URLSubmission{}, fmt.Errorf("parse validity period %q: %w", period, err)
		}
		sub.ValidityPeriod = &minutes
	}

	return sub, nil
}
