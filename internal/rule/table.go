package rule

import (
	"fmt"
	"slices"
	"strings"
)

// Implication is a bitset of facts forced by a neighborhood descriptor.
type Implication uint8

const (
	// Conflict marks a descriptor no assignment can satisfy.
	Conflict Implication = 1 << iota

	// SuccessorAlive forces the successor cell alive.
	SuccessorAlive

	// SuccessorDead forces the successor cell dead.
	SuccessorDead

	// CurrentAlive forces the cell itself alive.
	CurrentAlive

	// CurrentDead forces the cell itself dead.
	CurrentDead

	// NeighborhoodAlive forces every unknown neighbor alive.
	NeighborhoodAlive

	// NeighborhoodDead forces every unknown neighbor dead.
	NeighborhoodDead
)

// Has reports whether every flag in mask is set.
func (i Implication) Has(mask Implication) bool {
	return i&mask == mask
}

func (i Implication) String() string {
	if i == 0 {
		return "none"
	}
	names := []struct {
		flag Implication
		name string
	}{
		{Conflict, "Conflict"},
		{SuccessorAlive, "SuccessorAlive"},
		{SuccessorDead, "SuccessorDead"},
		{CurrentAlive, "CurrentAlive"},
		{CurrentDead, "CurrentDead"},
		{NeighborhoodAlive, "NeighborhoodAlive"},
		{NeighborhoodDead, "NeighborhoodDead"},
	}
	var parts []string
	for _, n := range names {
		if i.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Table is the compiled implication table of a rule.
//
// The table is indexed by the full 16-bit descriptor and answers every
// deduction the search needs in a single lookup. It is built once per search.
type Table struct {
	rule    Rule
	size    int
	radius  int
	offsets []Offset
	table   []Implication
}

// NewTable compiles a rule into its implication table.
//
// Rules with B0, hexagonal neighborhoods, more than two states, or a
// neighborhood larger than MaxNeighborhood are rejected with an
// ErrCodeUnsupported ParseError.
func NewTable(r Rule) (*Table, error) {
	if r.ContainsB0() {
		return nil, unsupportedError(r, "B0 rules are not supported")
	}
	if r.Neighborhood == Hexagonal {
		return nil, unsupportedError(r, "hexagonal neighborhoods are not supported")
	}
	if r.States != 2 {
		return nil, unsupportedError(r, "only two-state rules are supported")
	}
	size := r.Size()
	if size > MaxNeighborhood {
		return nil, unsupportedError(r, fmt.Sprintf("neighborhood size %d exceeds %d", size, MaxNeighborhood))
	}

	t := &Table{
		rule:    r,
		size:    size,
		radius:  r.Radius,
		offsets: r.NeighborCoords(),
		table:   make([]Implication, 1<<descriptorBits),
	}
	t.deduceSuccessor()
	t.deduceConflict()
	t.deduceCurrent()
	t.deduceNeighborhood()
	return t, nil
}

func unsupportedError(r Rule, message string) *ParseError {
	return &ParseError{
		Code:    ErrCodeUnsupported,
		Rule:    r.String(),
		Message: message,
	}
}

// Rule returns the rule the table was compiled from.
func (t *Table) Rule() Rule {
	return t.rule
}

// Size returns the neighborhood size.
func (t *Table) Size() int {
	return t.size
}

// Radius returns the neighborhood radius.
func (t *Table) Radius() int {
	return t.radius
}

// Offsets returns the neighbor offsets in wiring order. The caller must not
// modify the returned slice.
func (t *Table) Offsets() []Offset {
	return t.offsets
}

// Implies returns the implication of a descriptor.
func (t *Table) Implies(d Descriptor) Implication {
	return t.table[d]
}

// deduceSuccessor fills in what the successor must be, given the counts and
// the current cell, with the successor field unknown.
func (t *Table) deduceSuccessor() {
	birth := t.rule.Birth
	survival := t.rule.Survival

	// All neighbors known: read the rule directly.
	for dead := 0; dead <= t.size; dead++ {
		alive := t.size - dead

		born := slices.Contains(birth, alive)
		survives := slices.Contains(survival, alive)

		whenDead := NewDescriptor(dead, alive, Unknown, Dead)
		if born {
			t.table[whenDead] |= SuccessorAlive
		} else {
			t.table[whenDead] |= SuccessorDead
		}

		whenAlive := NewDescriptor(dead, alive, Unknown, Alive)
		if survives {
			t.table[whenAlive] |= SuccessorAlive
		} else {
			t.table[whenAlive] |= SuccessorDead
		}

		// With the cell itself unknown, the successor is still dead when the
		// count is in neither list.
		if !born && !survives {
			whenUnknown := NewDescriptor(dead, alive, Unknown, Unknown)
			t.table[whenUnknown] |= SuccessorDead
		}
	}

	// Some neighbors unknown: if resolving one unknown neighbor either way
	// yields the same implication, that implication already holds.
	for unknown := 1; unknown <= t.size; unknown++ {
		for dead := 0; dead <= t.size-unknown; dead++ {
			alive := t.size - dead - unknown

			for _, current := range []State{Unknown, Dead, Alive} {
				d := NewDescriptor(dead, alive, Unknown, current)
				oneMoreDead := NewDescriptor(dead+1, alive, Unknown, current)
				oneMoreAlive := NewDescriptor(dead, alive+1, Unknown, current)

				if t.table[oneMoreDead] == t.table[oneMoreAlive] {
					t.table[d] = t.table[oneMoreDead]
				}
			}
		}
	}
}

// deduceConflict marks descriptors whose known successor contradicts the
// successor the counts force.
func (t *Table) deduceConflict() {
	for dead := 0; dead <= t.size; dead++ {
		for alive := 0; alive <= t.size-dead; alive++ {
			for _, current := range []State{Unknown, Dead, Alive} {
				implication := t.table[NewDescriptor(dead, alive, Unknown, current)]

				if implication.Has(SuccessorAlive) {
					t.table[NewDescriptor(dead, alive, Dead, current)] = Conflict
				}
				if implication.Has(SuccessorDead) {
					t.table[NewDescriptor(dead, alive, Alive, current)] = Conflict
				}
			}
		}
	}
}

// deduceCurrent forces the cell's own state when the opposite state would
// conflict.
func (t *Table) deduceCurrent() {
	for dead := 0; dead <= t.size; dead++ {
		for alive := 0; alive <= t.size-dead; alive++ {
			for _, successor := range []State{Dead, Alive} {
				d := NewDescriptor(dead, alive, successor, Unknown)

				if t.table[NewDescriptor(dead, alive, successor, Dead)].Has(Conflict) {
					t.table[d] |= CurrentAlive
				}
				if t.table[NewDescriptor(dead, alive, successor, Alive)].Has(Conflict) {
					t.table[d] |= CurrentDead
				}
			}
		}
	}
}

// deduceNeighborhood forces all unknown neighbors to one state when resolving
// any of them to the other state would conflict.
func (t *Table) deduceNeighborhood() {
	for unknown := 1; unknown <= t.size; unknown++ {
		for dead := 0; dead <= t.size-unknown; dead++ {
			alive := t.size - dead - unknown

			for _, successor := range []State{Dead, Alive} {
				for _, current := range []State{Unknown, Dead, Alive} {
					d := NewDescriptor(dead, alive, successor, current)
					oneMoreDead := NewDescriptor(dead+1, alive, successor, current)
					oneMoreAlive := NewDescriptor(dead, alive+1, successor, current)

					if t.table[oneMoreDead].Has(Conflict) {
						t.table[d] |= NeighborhoodAlive
					}
					if t.table[oneMoreAlive].Has(Conflict) {
						t.table[d] |= NeighborhoodDead
					}
				}
			}
		}
	}
}
