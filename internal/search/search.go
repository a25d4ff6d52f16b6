package search

import (
	"github.com/roach88/casrc/internal/rule"
)

// checkDescriptor looks up what a cell's descriptor implies and applies the
// forced states. It returns false on a contradiction.
func (w *World) checkDescriptor(id int) bool {
	implication := w.table.Implies(w.cells[id].descriptor)

	if implication == 0 {
		return true
	}

	if implication.Has(rule.Conflict) {
		return false
	}

	// A forced successor means the successor was unknown, so nothing else
	// about this cell or its neighbors can be forced yet.
	if implication&(rule.SuccessorDead|rule.SuccessorAlive) != 0 {
		state := rule.Dead
		if implication.Has(rule.SuccessorAlive) {
			state = rule.Alive
		}

		if successor := w.cells[id].successor; successor != outside {
			w.setCell(successor, state, deduced(id))
			return true
		}
	}

	if implication&(rule.CurrentDead|rule.CurrentAlive) != 0 {
		state := rule.Dead
		if implication.Has(rule.CurrentAlive) {
			state = rule.Alive
		}

		w.setCell(id, state, deduced(id))
	}

	if implication&(rule.NeighborhoodDead|rule.NeighborhoodAlive) != 0 {
		state := rule.Dead
		if implication.Has(rule.NeighborhoodAlive) {
			state = rule.Alive
		}

		for _, n := range w.cells[id].neighborhood {
			if n != outside && w.cells[n].state == rule.Unknown {
				w.setCell(n, state, deduced(id))
			}
		}
	}

	return true
}

// checkAffected propagates one assignment: it forces the symmetry peers,
// then rechecks the descriptors of the cell, its neighbors, and its
// predecessor, the only descriptors the assignment touched. It also
// enforces the front and population bounds. It returns false on a
// contradiction.
func (w *World) checkAffected(id int) bool {
	if !w.config.AllowEmptyFront && w.frontCount == 0 {
		return false
	}

	if w.population[0] > w.maxPopulation {
		return false
	}

	state := w.cells[id].state
	for _, peer := range w.cells[id].peers {
		switch peerState := w.cells[peer].state; {
		case peerState == rule.Unknown:
			w.setCell(peer, state, deduced(id))
		case peerState != state:
			return false
		}
	}

	if !w.checkDescriptor(id) {
		return false
	}

	for _, n := range w.cells[id].neighborhood {
		if n != outside && !w.checkDescriptor(n) {
			return false
		}
	}

	if predecessor := w.cells[id].predecessor; predecessor != outside {
		if !w.checkDescriptor(predecessor) {
			return false
		}
	}

	return true
}

// checkStack drains the propagation queue, the part of the stack that has
// not been checked yet. It returns false on a contradiction.
func (w *World) checkStack() bool {
	for w.stackIndex < len(w.stack) {
		if !w.checkAffected(w.stack[w.stackIndex].cell) {
			return false
		}
		w.stackIndex++
	}
	return true
}

// backtrack unwinds the stack to the most recent decision and retries it
// with the opposite state. The retry is recorded as a deduction, so the
// next backtrack through it keeps unwinding. It returns false when no
// decision is left to retry.
func (w *World) backtrack() bool {
	for len(w.stack) > 0 {
		entry := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		switch entry.reason.Kind {
		case ReasonKnown:
			return false

		case ReasonDeduced:
			w.unsetCell(entry.cell)

		case ReasonDecided:
			state := w.cells[entry.cell].state
			w.stackIndex = len(w.stack)
			w.start = w.cells[entry.cell].next
			w.unsetCell(entry.cell)
			w.setCell(entry.cell, state.Flip(), deduced(entry.cell))
			return true
		}
	}

	return false
}

// guessState picks the tentative state for a decision.
func (w *World) guessState() rule.State {
	switch w.config.NewState {
	case AliveFirst:
		return rule.Alive
	case RandomChoice:
		if w.rng.Uint64()&1 == 0 {
			return rule.Dead
		}
		return rule.Alive
	default:
		return rule.Dead
	}
}

// guess walks the search order from start to the next undetermined cell and
// assigns it a tentative state. It returns false when every cell is known.
func (w *World) guess() bool {
	for w.start != outside {
		id := w.start
		if w.cells[id].state == rule.Unknown {
			w.setCell(id, w.guessState(), decided())
			w.start = w.cells[id].next
			w.stats.Decisions++
			return true
		}
		w.start = w.cells[id].next
	}
	return false
}

// stationary reports whether a completed pattern repeats with a period that
// divides the configured one: generation 1 equals generation 0. Such a
// pattern would be found again by a search with the smaller period, so it
// is rejected, except for the plain still-life search where the period is 1
// with no motion.
func (w *World) stationary() bool {
	if w.config.Period == 1 && w.config.Dx == 0 && w.config.Dy == 0 &&
		w.config.Transformation.IsElementOf(w.config.Symmetry) {
		return false
	}

	for y := 0; y < w.config.Height; y++ {
		for x := 0; x < w.config.Width; x++ {
			if w.CellState(x, y, 0) != w.CellState(x, y, 1) {
				return false
			}
		}
	}
	return true
}

// stepOnce runs one unit of search: drain the propagation queue, then
// either make the next decision, report a completed pattern, or backtrack.
func (w *World) stepOnce() Status {
	if w.checkStack() {
		if w.guess() {
			return Searching
		}

		if w.stationary() {
			w.stats.Conflicts++
			if !w.backtrack() {
				return NoMoreSolutions
			}
			return Searching
		}

		return Found
	}

	w.stats.Conflicts++
	if !w.backtrack() {
		return NoMoreSolutions
	}
	return Searching
}

// Step advances the search by at most budget units and returns the new
// status. A budget unit is one decision, backtrack, or completion check,
// including its full propagation.
//
// When the previous call returned Found, Step first backtracks past the
// found pattern, so repeated calls enumerate every solution. With
// Config.ReduceMax, the population bound is lowered to one below the found
// pattern's population before resuming.
func (w *World) Step(budget uint64) Status {
	if w.status == Found {
		if w.config.ReduceMax {
			w.maxPopulation = w.population[0] - 1
		}
		if !w.backtrack() {
			w.status = NoMoreSolutions
			return w.status
		}
		w.status = Searching
	}

	if w.status == NoMoreSolutions {
		return w.status
	}

	for i := uint64(0); i < budget; i++ {
		status := w.stepOnce()
		w.stats.Steps++

		if status != Searching {
			w.status = status
			return status
		}
	}

	w.status = Searching
	return Searching
}

// Search runs Step until the search finds a pattern or exhausts the space.
func (w *World) Search() Status {
	for {
		status := w.Step(1 << 16)
		if status != Searching {
			return status
		}
	}
}
