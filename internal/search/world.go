package search

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/roach88/casrc/internal/rule"
	"github.com/roach88/casrc/internal/symmetry"
)

// Status is the state of a search.
type Status uint8

const (
	// Initial means the search has not started.
	Initial Status = iota

	// Searching means the search is in progress.
	Searching

	// Found means the last step completed a pattern. Stepping again
	// resumes the search for the next one.
	Found

	// NoMoreSolutions means the search space is exhausted.
	NoMoreSolutions
)

func (s Status) String() string {
	switch s {
	case Initial:
		return "initial"
	case Searching:
		return "searching"
	case Found:
		return "found"
	case NoMoreSolutions:
		return "no-more-solutions"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s > NoMoreSolutions {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "initial":
		*s = Initial
	case "searching":
		*s = Searching
	case "found":
		*s = Found
	case "no-more-solutions":
		*s = NoMoreSolutions
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Stats are cumulative counters of the search.
type Stats struct {
	// Steps is the number of search steps taken.
	Steps uint64 `json:"steps"`

	// Decisions is the number of tentative assignments made.
	Decisions uint64 `json:"decisions"`

	// Conflicts is the number of contradictions resolved by backtracking.
	Conflicts uint64 `json:"conflicts"`

	// Population is the current number of living cells on generation 0.
	Population int `json:"population"`
}

// World is the space-time arena the search runs in.
//
// It holds (W+2R) x (H+2R) x P cells, where R is the rule radius: the
// bounding box plus a margin of cells that are dead but whose descriptors
// the propagation still reads. All methods must be called from one
// goroutine; the world is consistent between Step calls.
type World struct {
	config Config
	table  *rule.Table

	cells []cell

	pcg *rand.PCG
	rng *rand.Rand

	// population counts the living cells on each generation.
	population []int

	// maxPopulation bounds population[0]. math.MaxInt means unbounded.
	maxPopulation int

	// frontCount is the number of unknown-or-living cells on the front.
	// A pattern whose front dies out could be shifted towards the front
	// and found again, so reaching zero is a contradiction.
	frontCount int

	// stack records every assignment in order. The tail from stackIndex
	// on is the queue of assignments still to be propagated.
	stack      []stackEntry
	stackIndex int

	// start is where the next scan for an undetermined cell begins.
	start int

	status Status
	stats  Stats
}

// NewWorld validates the configuration and builds the arena.
func NewWorld(config Config) (*World, error) {
	table, err := config.parseRule()
	if err != nil {
		return nil, err
	}

	config, err = config.checked()
	if err != nil {
		return nil, err
	}

	width, height, period := config.Width, config.Height, config.Period
	radius := table.Radius()
	size := (width + 2*radius) * (height + 2*radius) * period

	cells := make([]cell, size)
	for i := range cells {
		cells[i] = cell{
			generation:  i % period,
			predecessor: outside,
			successor:   outside,
			next:        outside,
		}
	}

	var seed uint64
	if config.Seed != nil {
		seed = *config.Seed
	} else {
		seed = rand.Uint64()
	}
	pcg := rand.NewPCG(seed, 0)

	w := &World{
		config:        config,
		table:         table,
		cells:         cells,
		pcg:           pcg,
		rng:           rand.New(pcg),
		population:    make([]int, period),
		maxPopulation: math.MaxInt,
		stack:         make([]stackEntry, 0, size),
		start:         outside,
		status:        Initial,
	}
	if config.MaxPopulation != nil {
		w.maxPopulation = *config.MaxPopulation
	}

	w.initFront()
	w.initNeighborhood()
	w.initPredecessorSuccessor()
	w.initSymmetry()
	w.initNext()
	w.initKnown()

	if err := w.applyKnownCells(); err != nil {
		return nil, err
	}

	return w, nil
}

// cellIndex maps a coordinate to its arena index, or outside.
func (w *World) cellIndex(x, y, t int) int {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	r := w.table.Radius()

	if x < -r || x >= width+r || y < -r || y >= height+r || t < 0 || t >= period {
		return outside
	}
	return t + (x+r)*period + (y+r)*period*(width+2*r)
}

// initFront marks the cells whose non-emptiness the search enforces.
//
// When the symmetry, transformation and translation permit shifting a
// pattern towards the first row, column, or diagonal, that line alone is
// the front, narrowed further when a reflection or a generation rotation
// makes part of it redundant. Otherwise the whole generation-0 grid is the
// front.
func (w *World) initFront() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	dx, dy := w.config.Dx, w.config.Dy

	mark := func(x, y, t int) {
		w.cells[w.cellIndex(x, y, t)].isFront = true
		w.frontCount++
	}

	useFront := false

	switch w.config.SearchOrder {
	case RowFirst:
		if w.config.Symmetry.IsSubgroupOf(symmetry.D2H) &&
			w.config.Transformation.IsElementOf(symmetry.D2H) &&
			w.config.DiagonalWidth == 0 {
			useFront = true

			fw := width
			if dx == 0 {
				fw = (width + 1) / 2
			}

			if dx == 0 && dy >= 0 {
				y := max(dy, 1) - 1
				for x := 0; x < fw; x++ {
					mark(x, y, 0)
				}
			} else {
				for x := 0; x < fw; x++ {
					for t := 0; t < period; t++ {
						mark(x, 0, t)
					}
				}
			}
		}

	case ColumnFirst:
		if w.config.Symmetry.IsSubgroupOf(symmetry.D2V) &&
			w.config.Transformation.IsElementOf(symmetry.D2V) &&
			w.config.DiagonalWidth == 0 {
			useFront = true

			fh := height
			if dy == 0 {
				fh = (height + 1) / 2
			}

			if dx >= 0 && dy == 0 {
				x := max(dx, 1) - 1
				for y := 0; y < fh; y++ {
					mark(x, y, 0)
				}
			} else {
				for y := 0; y < fh; y++ {
					for t := 0; t < period; t++ {
						mark(0, y, t)
					}
				}
			}
		}

	case Diagonal:
		if w.config.Symmetry.IsSubgroupOf(symmetry.D2D) &&
			w.config.Transformation.IsElementOf(symmetry.D2D) {
			useFront = true

			d := w.config.DiagonalWidth
			if d == 0 {
				d = width
			}

			if dx == dy && dx >= 0 {
				y := max(dy, 1) - 1
				for x := 0; x < d; x++ {
					mark(x, y, 0)
				}
			} else {
				for x := 0; x < d; x++ {
					for t := 0; t < period; t++ {
						mark(x, 0, t)
					}
				}

				if dx != dy {
					for y := 1; y < d; y++ {
						for t := 0; t < period; t++ {
							mark(0, y, t)
						}
					}
				}
			}
		}
	}

	if !useFront {
		for x := 0; x < width; x++ {
			for y := 0; y < height; y++ {
				mark(x, y, 0)
			}
		}
	}
}

// initNeighborhood wires each cell to its spatial neighbors. Neighbors
// outside the world count as permanently dead in the descriptor.
func (w *World) initNeighborhood() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	r := w.table.Radius()
	offsets := w.table.Offsets()
	k := w.table.Size()

	backing := make([]int, len(w.cells)*k)

	for x := -r; x < width+r; x++ {
		for y := -r; y < height+r; y++ {
			for t := 0; t < period; t++ {
				id := w.cellIndex(x, y, t)
				c := &w.cells[id]
				c.neighborhood = backing[id*k : (id+1)*k : (id+1)*k]

				for i, o := range offsets {
					n := w.cellIndex(x+o.X, y+o.Y, t)
					c.neighborhood[i] = n
					if n == outside {
						c.descriptor.IncrementDead()
					}
				}
			}
		}
	}
}

// initPredecessorSuccessor wires each cell to the same spatial position one
// generation earlier and later. A successor outside the world is dead, which
// the descriptor records immediately.
func (w *World) initPredecessorSuccessor() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	r := w.table.Radius()

	for x := -r; x < width+r; x++ {
		for y := -r; y < height+r; y++ {
			for t := 0; t < period; t++ {
				px, py, pt := w.canonicalizeCoord(x, y, t-1)
				sx, sy, st := w.canonicalizeCoord(x, y, t+1)

				c := &w.cells[w.cellIndex(x, y, t)]
				c.predecessor = w.cellIndex(px, py, pt)
				c.successor = w.cellIndex(sx, sy, st)

				if c.successor == outside {
					c.descriptor.ToggleSuccessor(rule.Dead)
				}
			}
		}
	}
}

// initSymmetry records, for each cell, the cells it must agree with under
// the symmetry.
func (w *World) initSymmetry() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	r := w.table.Radius()
	transformations := w.config.Symmetry.Transformations()

	for x := -r; x < width+r; x++ {
		for y := -r; y < height+r; y++ {
			coords := make([][2]int, 0, len(transformations))
			for _, tr := range transformations {
				x1, y1 := tr.ApplyWithSize(x, y, width, height)
				coords = append(coords, [2]int{x1, y1})
			}
			slices.SortFunc(coords, func(a, b [2]int) int {
				if a[0] != b[0] {
					return a[0] - b[0]
				}
				return a[1] - b[1]
			})
			coords = slices.Compact(coords)

			for t := 0; t < period; t++ {
				peers := make([]int, 0, len(coords))
				for _, c := range coords {
					if id := w.cellIndex(c[0], c[1], t); id != outside {
						peers = append(peers, id)
					}
				}
				w.cells[w.cellIndex(x, y, t)].peers = peers
			}
		}
	}
}

// initNext threads the search order through the cells of the bounding box,
// in reverse so that the head of the chain is the first cell visited.
func (w *World) initNext() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period

	thread := func(x, y, t int) {
		id := w.cellIndex(x, y, t)
		w.cells[id].next = w.start
		w.start = id
	}

	switch w.config.SearchOrder {
	case RowFirst:
		for y := height - 1; y >= 0; y-- {
			for x := width - 1; x >= 0; x-- {
				for t := period - 1; t >= 0; t-- {
					thread(x, y, t)
				}
			}
		}

	case ColumnFirst:
		for x := width - 1; x >= 0; x-- {
			for y := height - 1; y >= 0; y-- {
				for t := period - 1; t >= 0; t-- {
					thread(x, y, t)
				}
			}
		}

	case Diagonal:
		d := w.config.DiagonalWidth
		for a := 2*width - 2; a >= 0; a-- {
			for x := width - 1; x >= 0; x-- {
				y := a - x
				if y < 0 || y >= width || (d > 0 && abs(x-y) >= d) {
					continue
				}
				for t := period - 1; t >= 0; t-- {
					thread(x, y, t)
				}
			}
		}
	}
}

// initKnown forces dead the cells whose state the configuration already
// fixes: the margin around the box, the cells outside the diagonal band,
// and the cells whose predecessor left the world.
func (w *World) initKnown() {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	r := w.table.Radius()
	d := w.config.DiagonalWidth

	for x := -r; x < width+r; x++ {
		for y := -r; y < height+r; y++ {
			for t := 0; t < period; t++ {
				id := w.cellIndex(x, y, t)
				if x < 0 || x >= width || y < 0 || y >= height ||
					(d > 0 && abs(x-y) >= d) ||
					w.cells[id].predecessor == outside {
					w.setCell(id, rule.Dead, known())
				}
			}
		}
	}
}

// applyKnownCells pins the configured cells and propagates the
// consequences. A contradiction here fails construction.
func (w *World) applyKnownCells() error {
	if len(w.config.KnownCells) == 0 {
		return nil
	}

	for _, k := range w.config.KnownCells {
		id := w.cellIndex(k.X, k.Y, k.T)
		switch current := w.cells[id].state; {
		case current == rule.Unknown:
			w.setCell(id, k.State, known())
		case current != k.State:
			return newConfigError(ErrCodeConflictingKnownCells, "known_cells",
				"cell (%d, %d, %d) is already %v", k.X, k.Y, k.T, current)
		}
	}

	if !w.checkStack() {
		return newConfigError(ErrCodeConflictingKnownCells, "known_cells",
			"known cells contradict the rule")
	}

	return nil
}

// setCell assigns a state to an undetermined cell and updates every
// descriptor that can see it. The assignment is pushed on the stack.
func (w *World) setCell(id int, state rule.State, reason Reason) {
	c := &w.cells[id]
	c.state = state
	c.descriptor.ToggleCurrent(state)

	for _, n := range c.neighborhood {
		if n == outside {
			continue
		}
		if state == rule.Dead {
			w.cells[n].descriptor.IncrementDead()
		} else {
			w.cells[n].descriptor.IncrementAlive()
		}
	}

	if c.predecessor != outside {
		w.cells[c.predecessor].descriptor.ToggleSuccessor(state)
	}

	if c.isFront && state == rule.Dead {
		w.frontCount--
	}

	if state == rule.Alive {
		w.population[c.generation]++
	}

	w.stack = append(w.stack, stackEntry{cell: id, reason: reason})
}

// unsetCell reverts an assignment made by setCell. Popping the stack is the
// caller's responsibility.
func (w *World) unsetCell(id int) {
	c := &w.cells[id]
	state := c.state
	c.state = rule.Unknown
	c.descriptor.ToggleCurrent(state)

	for _, n := range c.neighborhood {
		if n == outside {
			continue
		}
		if state == rule.Dead {
			w.cells[n].descriptor.DecrementDead()
		} else {
			w.cells[n].descriptor.DecrementAlive()
		}
	}

	if c.predecessor != outside {
		w.cells[c.predecessor].descriptor.ToggleSuccessor(state)
	}

	if c.isFront && state == rule.Dead {
		w.frontCount++
	}

	if state == rule.Alive {
		w.population[c.generation]--
	}
}

// canonicalizeCoord folds a generation outside [0, P) back into range,
// applying the per-period transformation and translation as it crosses the
// wrap in either direction.
func (w *World) canonicalizeCoord(x, y, t int) (int, int, int) {
	width, height, period := w.config.Width, w.config.Height, w.config.Period
	tr := w.config.Transformation
	dx, dy := w.config.Dx, w.config.Dy

	for t < 0 {
		t += period
		x, y = tr.Inverse().ApplyWithSize(x, y, width, height)
		x -= dx
		y -= dy
	}

	for t >= period {
		t -= period
		x += dx
		y += dy
		x, y = tr.ApplyWithSize(x, y, width, height)
	}

	return x, y, t
}

// CellState returns the state of the cell at the given coordinate, after
// canonicalizing the generation. Coordinates outside the world are dead.
func (w *World) CellState(x, y, t int) rule.State {
	x, y, t = w.canonicalizeCoord(x, y, t)
	id := w.cellIndex(x, y, t)
	if id == outside {
		return rule.Dead
	}
	return w.cells[id].state
}

// Population returns the number of living cells on a generation. The
// generation is taken modulo the period.
func (w *World) Population(t int) int {
	period := w.config.Period
	return w.population[((t%period)+period)%period]
}

// Status returns the search status.
func (w *World) Status() Status {
	return w.status
}

// Config returns the validated configuration the world was built from.
func (w *World) Config() Config {
	return w.config
}

// Rule returns the parsed rule.
func (w *World) Rule() rule.Rule {
	return w.table.Rule()
}

// Stats returns the cumulative search counters.
func (w *World) Stats() Stats {
	stats := w.stats
	stats.Population = w.population[0]
	return stats
}
