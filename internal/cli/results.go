package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/casrc/internal/store"
)

// ResultsOptions holds flags for the results command.
type ResultsOptions struct {
	*RootOptions

	Database string
	Session  string
}

// sessionOutput is one archived session as reported to the user.
type sessionOutput struct {
	ID        string `json:"id"`
	Rule      string `json:"rule"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Period    int    `json:"period"`
	Status    string `json:"status"`
	Solutions int    `json:"solutions"`
	CreatedAt string `json:"created_at"`
}

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResultsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List archived searches and their patterns",
		Long: `List the sessions in a solution archive, or the patterns one session
found.

Example:
  casrc results --db results.db
  casrc results --db results.db --session 0b41f8a2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResults(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite solution archive (required)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "show the patterns of this session")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runResults(cmd *cobra.Command, opts *ResultsOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitIOError, "open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("closing database", "error", closeErr)
		}
	}()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Verbose:   opts.Verbose,
	}

	ctx := cmd.Context()

	if opts.Session != "" {
		return listSolutions(ctx, st, opts, formatter)
	}
	return listSessions(ctx, st, opts, formatter)
}

func listSessions(ctx context.Context, st *store.Store, opts *ResultsOptions, formatter *OutputFormatter) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitIOError, "list sessions", err)
	}

	out := make([]sessionOutput, 0, len(sessions))
	for _, s := range sessions {
		count, err := st.SolutionCount(ctx, s.ID)
		if err != nil {
			return WrapExitError(ExitIOError, "count solutions", err)
		}
		out = append(out, sessionOutput{
			ID:        s.ID,
			Rule:      s.Rule,
			Width:     s.Config.Width,
			Height:    s.Config.Height,
			Period:    s.Config.Period,
			Status:    s.Status.String(),
			Solutions: count,
			CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	if len(out) == 0 {
		fmt.Fprintln(os.Stdout, "no sessions")
		return nil
	}
	for _, s := range out {
		fmt.Fprintf(os.Stdout, "%s  %s  %dx%d p%d  %s  %d pattern(s)  %s\n",
			s.ID, s.Rule, s.Width, s.Height, s.Period, s.Status, s.Solutions, s.CreatedAt)
	}
	return nil
}

func listSolutions(ctx context.Context, st *store.Store, opts *ResultsOptions, formatter *OutputFormatter) error {
	if _, err := st.Session(ctx, opts.Session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitBadConfig, "session", err)
		}
		return WrapExitError(ExitIOError, "read session", err)
	}

	solutions, err := st.Solutions(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitIOError, "list solutions", err)
	}

	if opts.Format == "json" {
		out := make([]solutionOutput, len(solutions))
		for i, sol := range solutions {
			out[i] = solutionOutput{
				Ordinal:    sol.Ordinal,
				Population: sol.Population,
				Steps:      sol.Steps,
				RLE:        sol.RLE,
			}
		}
		return formatter.Success(out)
	}

	if len(solutions) == 0 {
		fmt.Fprintln(os.Stdout, "no patterns")
		return nil
	}
	for _, sol := range solutions {
		fmt.Fprintf(os.Stdout, "#%d  population %d  steps %d\n%s\n\n",
			sol.Ordinal, sol.Population, sol.Steps, sol.RLE)
	}
	return nil
}
