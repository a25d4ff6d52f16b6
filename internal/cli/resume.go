package cli

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/casrc/internal/search"
)

// ResumeOptions holds flags for the resume command.
type ResumeOptions struct {
	*RootOptions

	All        bool
	StepBudget uint64
	SaveFile   string
	Database   string
}

// NewResumeCommand creates the resume command.
func NewResumeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResumeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resume <save-file>",
		Short: "Resume a saved search",
		Long: `Resume a search from a save file written by new --save or resume --save.

The world is rebuilt from the saved configuration and the recorded
decisions are replayed, so the search continues exactly where it stopped.

Example:
  casrc resume ship.save --save ship.save --db results.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "enumerate every pattern instead of stopping at the next")
	cmd.Flags().Uint64Var(&opts.StepBudget, "step-budget", 0, "search steps per suspension point")
	cmd.Flags().StringVar(&opts.SaveFile, "save", "", "write the final search state to this file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "archive found patterns to this SQLite database")

	return cmd
}

func runResume(cmd *cobra.Command, opts *ResumeOptions, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitIOError, "read save file", err)
	}

	w, err := search.Load(data)
	if err != nil {
		var serdeErr *search.SerdeError
		if errors.As(err, &serdeErr) {
			return WrapExitError(ExitBadConfig, "unusable save file", err)
		}
		return WrapExitError(ExitBadConfig, "invalid saved configuration", err)
	}

	stats := w.Stats()
	slog.Info("search resumed",
		"rule", w.Config().RuleString(), "status", w.Status(), "steps", stats.Steps)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runSearch(ctx, opts.RootOptions, w, opts.All, opts.StepBudget, opts.SaveFile, opts.Database)
}
