package search

import (
	"encoding/json"
	"math"

	"github.com/roach88/casrc/internal/rule"
)

// saveVersion tags the save format. It is bumped whenever the record layout
// or the replay semantics change.
const saveVersion = 1

// saveEntry is one decision-stack frame in a save record.
type saveEntry struct {
	Cell   int        `json:"cell"`
	State  rule.State `json:"state"`
	Reason Reason     `json:"reason"`
}

// saveRecord is the persisted form of a search. The world itself is not
// stored; loading rebuilds it from the configuration and replays the stack.
type saveRecord struct {
	Version       int         `json:"version"`
	Rule          string      `json:"rule"`
	Config        Config      `json:"config"`
	RNG           []byte      `json:"rng"`
	Population    []int       `json:"population"`
	MaxPopulation *int        `json:"max_population,omitempty"`
	FrontCount    int         `json:"front_count"`
	Stack         []saveEntry `json:"stack"`
	StackIndex    int         `json:"stack_index"`
	Start         *int        `json:"start,omitempty"`
	Status        Status      `json:"status"`
	Stats         Stats       `json:"stats"`
}

// Save encodes the search so that Load can resume it. It may be called
// whenever Step is not running.
func (w *World) Save() ([]byte, error) {
	rng, err := w.pcg.MarshalBinary()
	if err != nil {
		return nil, newSerdeError(ErrCodeCorruptedStream, "encoding rng state: %v", err)
	}

	stack := make([]saveEntry, len(w.stack))
	for i, e := range w.stack {
		stack[i] = saveEntry{
			Cell:   e.cell,
			State:  w.cells[e.cell].state,
			Reason: e.reason,
		}
	}

	rec := saveRecord{
		Version:    saveVersion,
		Rule:       w.table.Rule().String(),
		Config:     w.config,
		RNG:        rng,
		Population: append([]int(nil), w.population...),
		FrontCount: w.frontCount,
		Stack:      stack,
		StackIndex: w.stackIndex,
		Status:     w.status,
		Stats:      w.stats,
	}

	if w.maxPopulation != math.MaxInt {
		bound := w.maxPopulation
		rec.MaxPopulation = &bound
	}

	if w.start != outside {
		start := w.start
		rec.Start = &start
	}

	return json.Marshal(rec)
}

// Load rebuilds a saved search: the world is constructed from the record's
// configuration, the decision stack is replayed, and the searcher state is
// restored. The record must carry the current format version and its rule
// must match what the configuration parses to.
func Load(data []byte) (*World, error) {
	var rec saveRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, newSerdeError(ErrCodeCorruptedStream, "decoding record: %v", err)
	}

	if rec.Version != saveVersion {
		return nil, newSerdeError(ErrCodeVersionMismatch,
			"record version %d, want %d", rec.Version, saveVersion)
	}

	w, err := NewWorld(rec.Config)
	if err != nil {
		return nil, err
	}

	if got := w.table.Rule().String(); got != rec.Rule {
		return nil, newSerdeError(ErrCodeRuleMismatch,
			"record rule %q, configuration parses to %q", rec.Rule, got)
	}

	if len(rec.Population) != w.config.Period {
		return nil, newSerdeError(ErrCodeCorruptedStream,
			"%d population counts for period %d", len(rec.Population), w.config.Period)
	}

	allKnown := true
	for _, e := range rec.Stack {
		if e.Cell < 0 || e.Cell >= len(w.cells) {
			return nil, newSerdeError(ErrCodeOutOfBounds,
				"stack cell %d outside world of %d cells", e.Cell, len(w.cells))
		}
		if e.Reason.Kind == ReasonDeduced &&
			(e.Reason.From < outside || e.Reason.From >= len(w.cells)) {
			return nil, newSerdeError(ErrCodeOutOfBounds,
				"deduction source %d outside world of %d cells", e.Reason.From, len(w.cells))
		}

		if e.Reason.Kind == ReasonKnown {
			if !allKnown {
				return nil, newSerdeError(ErrCodeInvalidStack,
					"known-state entry after a decision")
			}
		} else {
			allKnown = false
		}

		if !e.State.Known() {
			return nil, newSerdeError(ErrCodeInvalidStack,
				"stack entry for cell %d has no state", e.Cell)
		}

		if w.cells[e.Cell].state == rule.Unknown {
			w.setCell(e.Cell, e.State, e.Reason)
		}
	}

	if rec.Start != nil {
		if *rec.Start < 0 || *rec.Start >= len(w.cells) {
			return nil, newSerdeError(ErrCodeOutOfBounds,
				"start cell %d outside world of %d cells", *rec.Start, len(w.cells))
		}
		w.start = *rec.Start
	} else {
		w.start = outside
	}

	if err := w.pcg.UnmarshalBinary(rec.RNG); err != nil {
		return nil, newSerdeError(ErrCodeCorruptedStream, "decoding rng state: %v", err)
	}

	copy(w.population, rec.Population)
	w.maxPopulation = math.MaxInt
	if rec.MaxPopulation != nil {
		w.maxPopulation = *rec.MaxPopulation
	}
	w.frontCount = rec.FrontCount
	w.stackIndex = rec.StackIndex
	w.status = rec.Status
	w.stats = rec.Stats

	return w, nil
}
