package rule

import "fmt"

// MaxNeighborhood is the largest supported neighborhood size.
//
// The neighbor counts in a Descriptor are 6-bit fields, and the implication
// table is indexed by the full 16-bit descriptor, so 24 is the practical
// ceiling (a radius-3 cross or a radius-2 Moore neighborhood both fit).
const MaxNeighborhood = 24

// Descriptor is a packed summary of everything the rule can see around one
// cell: the number of determined dead and living neighbors, the state of the
// cell's successor, and the cell's own state.
//
// Bit layout, from the least significant bit:
//
//	[1:0]   current cell state (State encoding, 0b00 = unknown)
//	[3:2]   successor cell state
//	[9:4]   living neighbor count
//	[15:10] dead neighbor count
//
// The unknown-neighbor count is not stored; it is the neighborhood size
// minus the two stored counts.
type Descriptor uint16

const (
	neighborCountBits = 6
	neighborCountMask = 1<<neighborCountBits - 1

	stateBits = 2
	stateMask = 1<<stateBits - 1

	currentShift   = 0
	successorShift = stateBits
	aliveShift     = successorShift + stateBits
	deadShift      = aliveShift + neighborCountBits

	// descriptorBits is the total width of the packed descriptor, and
	// therefore the log2 of the implication table size.
	descriptorBits = deadShift + neighborCountBits
)

// NewDescriptor packs the given counts and states.
func NewDescriptor(dead, alive int, successor, current State) Descriptor {
	return Descriptor(dead)<<deadShift |
		Descriptor(alive)<<aliveShift |
		Descriptor(successor)<<successorShift |
		Descriptor(current)<<currentShift
}

// Dead returns the number of determined dead neighbors.
func (d Descriptor) Dead() int {
	return int(d>>deadShift) & neighborCountMask
}

// Alive returns the number of determined living neighbors.
func (d Descriptor) Alive() int {
	return int(d>>aliveShift) & neighborCountMask
}

// Successor returns the recorded state of the successor cell.
func (d Descriptor) Successor() State {
	return State(d>>successorShift) & stateMask
}

// Current returns the recorded state of the cell itself.
func (d Descriptor) Current() State {
	return State(d>>currentShift) & stateMask
}

// IncrementDead records one more determined dead neighbor.
func (d *Descriptor) IncrementDead() {
	*d += 1 << deadShift
}

// IncrementAlive records one more determined living neighbor.
func (d *Descriptor) IncrementAlive() {
	*d += 1 << aliveShift
}

// DecrementDead removes one determined dead neighbor.
func (d *Descriptor) DecrementDead() {
	*d -= 1 << deadShift
}

// DecrementAlive removes one determined living neighbor.
func (d *Descriptor) DecrementAlive() {
	*d -= 1 << aliveShift
}

// ToggleSuccessor flips the successor field between unknown and the given
// known state. When the field is already set, state must equal the recorded
// value; the XOR then clears the field back to unknown.
func (d *Descriptor) ToggleSuccessor(state State) {
	*d ^= Descriptor(state) << successorShift
}

// ToggleCurrent flips the current field between unknown and the given known
// state, with the same contract as ToggleSuccessor.
func (d *Descriptor) ToggleCurrent(state State) {
	*d ^= Descriptor(state) << currentShift
}

func (d Descriptor) String() string {
	return fmt.Sprintf("Descriptor{dead: %d, alive: %d, successor: %v, current: %v}",
		d.Dead(), d.Alive(), d.Successor(), d.Current())
}
