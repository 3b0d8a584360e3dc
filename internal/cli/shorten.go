package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"urlclient/internal/domain"
	"urlclient/internal/form"
	"urlclient/internal/validation"
)

type shortenOptions struct {
	validity   string
	shortcodes []string
}

func newShortenCommand(a *app) *cobra.Command {
	opts := &shortenOptions{}

	cmd := &cobra.Command{
		Use:   "shorten URL...",
		Short: "Shorten one or more URLs in a single batch",
		Long: "Shorten up to five URLs at once. --validity applies to every URL; " +
			"--shortcode may be repeated and is matched to the URLs by position.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShorten(cmd, a, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.validity, "validity", "", "validity period in minutes for every URL")
	cmd.Flags().StringArrayVar(&opts.shortcodes, "shortcode", nil, "preferred short code, repeat once per URL")
	return cmd
}

func runShorten(cmd *cobra.Command, a *app, opts *shortenOptions, urls []string) error {
	if len(opts.shortcodes) > len(urls) {
		return fmt.Errorf("got %d short codes for %d URLs", len(opts.shortcodes), len(urls))
	}

	f, err := a.newForm()
	if err != nil {
		return err
	}
	if len(urls) > f.MaxEntries() {
		return fmt.Errorf("you can shorten at most %d URLs at a time: %w", f.MaxEntries(), form.ErrFormFull)
	}

	drafts := make([]domain.SubmissionDraft, len(urls))
	for i, u := range urls {
		drafts[i] = domain.SubmissionDraft{OriginalURL: u, ValidityPeriod: opts.validity}
		if i < len(opts.shortcodes) {
			drafts[i].PreferredShortcode = opts.shortcodes[i]
		}
	}
	if err := fill(f, drafts); err != nil {
		return err
	}

	out := newStyles(a.stdout)
	report, err := f.Submit(cmd.Context())

	var batchErr *validation.BatchValidationError
	switch {
	case errors.As(err, &batchErr):
		out.batchErrors(a.stdout, drafts, batchErr)
		return fmt.Errorf("%d validation error(s), nothing was submitted", batchErr.Count())
	case errors.Is(err, form.ErrNothingToSubmit):
		return errors.New(form.MsgNothingToSubmit)
	case err != nil:
		return err
	}

	if len(report.Results) > 0 {
		out.shortened(a.stdout, report.Results)
	}
	if len(report.Failures) == 0 {
		return nil
	}
	out.failures(a.stdout, report.Failures)
	return errors.New(f.Snapshot().Banner)
}

// fill writes drafts into the form, one entry each. The form starts with a
// single blank entry which takes the first draft.
func fill(f *form.Form, drafts []domain.SubmissionDraft) error {
	ids := []string{f.Snapshot().Entries[0].ID}
	for range drafts[1:] {
		id, err := f.Add()
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	for i, d := range drafts {
		if err := f.Update(ids[i], d); err != nil {
			return err
		}
	}
	return nil
}
