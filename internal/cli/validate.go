package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"urlclient/internal/domain"
	"urlclient/internal/validation"
)

var errInvalidInput = errors.New("input is not valid")

func newValidateCommand(a *app) *cobra.Command {
	var draft domain.SubmissionDraft

	cmd := &cobra.Command{
		Use:   "validate URL",
		Short: "Check a URL and its options without contacting the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			draft.OriginalURL = args[0]
			out := newStyles(a.stdout)

			err := a.validator.ValidateDraft(draft)
			if err == nil {
				fmt.Fprintln(a.stdout, out.success.Render("✓ valid"))
				return nil
			}

			var draftErr *validation.DraftError
			if !errors.As(err, &draftErr) {
				return err
			}
			out.fieldErrors(a.stdout, draftErr)
			return errInvalidInput
		},
	}

	cmd.Flags().StringVar(&draft.ValidityPeriod, "validity", "", "validity period in minutes")
	cmd.Flags().StringVar(&draft.PreferredShortcode, "shortcode", "", "preferred short code")
	return cmd
}
