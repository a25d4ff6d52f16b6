package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/roach88/casrc/internal/search"
	"github.com/roach88/casrc/internal/store"
)

// defaultStepBudget is the number of search steps taken between suspension
// points, where signals and progress logging get a chance to run.
const defaultStepBudget = 1 << 16

// solutionOutput is one found pattern as reported to the user.
type solutionOutput struct {
	Ordinal    int    `json:"ordinal"`
	Population int    `json:"population"`
	Steps      uint64 `json:"steps"`
	RLE        string `json:"rle"`
}

// searchOutput is the final report of a search run.
type searchOutput struct {
	Status    search.Status    `json:"status"`
	Stats     search.Stats     `json:"stats"`
	Solutions []solutionOutput `json:"solutions"`
	SessionID string           `json:"session_id,omitempty"`
}

// runSearch drives a world until it finds a pattern (or all patterns with
// all set), streaming every find to stdout and, when a database is given,
// into the solution archive. It honors context cancellation between steps
// and writes the save file, if any, before returning.
//
// The returned error carries the exit code: nil when at least one pattern
// was found, ExitNoSolution when the search space is exhausted or the run
// was interrupted empty-handed.
func runSearch(ctx context.Context, opts *RootOptions, w *search.World, all bool, budget uint64, savePath, dbPath string) error {
	if budget == 0 {
		budget = defaultStepBudget
	}

	var st *store.Store
	var session store.Session
	if dbPath != "" {
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitIOError, "open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("closing database", "error", closeErr)
			}
		}()

		session = store.NewSession(w.Config())
		if err := st.CreateSession(ctx, session); err != nil {
			return WrapExitError(ExitIOError, "create session", err)
		}
		slog.Info("archiving to database", "path", dbPath, "session", session.ID)
	}

	out := searchOutput{SessionID: session.ID}
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Verbose:   opts.Verbose,
	}

	lastLog := time.Now()

search:
	for {
		select {
		case <-ctx.Done():
			slog.Info("search interrupted", "steps", w.Stats().Steps)
			break search
		default:
		}

		status := w.Step(budget)

		switch status {
		case search.Found:
			sol := solutionOutput{
				Ordinal:    len(out.Solutions),
				Population: w.Population(0),
				Steps:      w.Stats().Steps,
				RLE:        w.RLE(0, true),
			}
			out.Solutions = append(out.Solutions, sol)
			slog.Info("pattern found",
				"ordinal", sol.Ordinal, "population", sol.Population, "steps", sol.Steps)

			if opts.Format == "text" {
				fmt.Fprintf(os.Stdout, "%s\n\n", sol.RLE)
			}

			if st != nil {
				record := store.Solution{
					SessionID:  session.ID,
					Ordinal:    sol.Ordinal,
					RLE:        sol.RLE,
					Population: sol.Population,
					Steps:      sol.Steps,
					FoundAt:    time.Now().UTC(),
				}
				if err := st.AppendSolution(ctx, record); err != nil {
					return WrapExitError(ExitIOError, "archive solution", err)
				}
			}

			if !all {
				break search
			}

		case search.NoMoreSolutions:
			break search

		case search.Searching:
			if opts.Verbose && time.Since(lastLog) >= time.Second {
				stats := w.Stats()
				slog.Debug("searching",
					"steps", stats.Steps, "decisions", stats.Decisions,
					"conflicts", stats.Conflicts, "population", stats.Population)
				lastLog = time.Now()
			}
		}
	}

	out.Status = w.Status()
	out.Stats = w.Stats()

	if st != nil {
		if err := st.SetSessionStatus(ctx, session.ID, w.Status()); err != nil {
			return WrapExitError(ExitIOError, "record session status", err)
		}
	}

	if savePath != "" {
		data, err := w.Save()
		if err != nil {
			return WrapExitError(ExitIOError, "encode search state", err)
		}
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			return WrapExitError(ExitIOError, "write save file", err)
		}
		slog.Info("search state saved", "path", savePath)
	}

	if opts.Format == "json" {
		if err := formatter.Success(out); err != nil {
			return WrapExitError(ExitIOError, "write output", err)
		}
	} else {
		fmt.Fprintf(os.Stdout, "%v: %d pattern(s), %d steps, %d conflicts\n",
			out.Status, len(out.Solutions), out.Stats.Steps, out.Stats.Conflicts)
	}

	if len(out.Solutions) == 0 {
		return NewExitError(ExitNoSolution, "no pattern found")
	}
	return nil
}
