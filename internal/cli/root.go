package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL    string
	showLogs  bool
	logFilter string
}

// Execute runs the command line with args. The log buffer of the run is
// printed after the command finished, also when it failed.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "urlclient",
		Short:         "Client for the URL shortening service",
		Long:          "Shorten up to five URLs at once, browse click statistics and inspect the client's own logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "base URL of the shortening API (overrides API_BASE_URL)")
	flags.BoolVar(&opts.showLogs, "show-logs", false, "print the application log buffer when the command finishes")
	flags.StringVar(&opts.logFilter, "log-filter", "", "only print log entries of this level (implies --show-logs)")

	root.AddCommand(
		newServeCommand(a),
		newShortenCommand(a),
		newListCommand(a),
		newStatsCommand(a),
		newValidateCommand(a),
	)
	return root
}
