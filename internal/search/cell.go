package search

import (
	"fmt"

	"github.com/roach88/casrc/internal/rule"
)

// outside is the cell index used for links that leave the world. A cell
// outside the world is permanently dead.
const outside = -1

// cell is one point of the space-time arena.
//
// All links are indices into the world's cell slice, with outside marking a
// link that left the world. Links are wired once at construction and never
// change; only state and descriptor mutate during the search.
type cell struct {
	// generation is the time coordinate of the cell.
	generation int

	// state is the current three-valued state.
	state rule.State

	// isFront marks cells counted by the front non-emptiness check.
	isFront bool

	// descriptor summarizes the neighbor states, the successor state and
	// the cell's own state for the implication table.
	descriptor rule.Descriptor

	// predecessor and successor are the same spatial cell one generation
	// earlier and later, after canonicalization.
	predecessor int
	successor   int

	// neighborhood lists the spatial neighbors in rule offset order.
	neighborhood []int

	// peers lists the cells this one must agree with under the symmetry,
	// including the cell itself.
	peers []int

	// next threads the search order through the cells of the bounding box
	// (only the diagonal band, for the diagonal order with a diagonal
	// width). The chain also holds cells that are already determined; the
	// search skips them.
	next int
}

// ReasonKind tells why a cell was assigned its state.
type ReasonKind uint8

const (
	// ReasonKnown marks states fixed before the search: boundary cells,
	// the diagonal band, and explicitly known cells.
	ReasonKnown ReasonKind = iota

	// ReasonDecided marks a tentative state chosen by the searcher.
	ReasonDecided

	// ReasonDeduced marks a state forced by propagation from another cell.
	ReasonDeduced
)

func (k ReasonKind) String() string {
	switch k {
	case ReasonKnown:
		return "known"
	case ReasonDecided:
		return "decided"
	case ReasonDeduced:
		return "deduced"
	default:
		return fmt.Sprintf("ReasonKind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ReasonKind) MarshalText() ([]byte, error) {
	if k > ReasonDeduced {
		return nil, fmt.Errorf("invalid reason %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ReasonKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "known":
		*k = ReasonKnown
	case "decided":
		*k = ReasonDecided
	case "deduced":
		*k = ReasonDeduced
	default:
		return fmt.Errorf("unknown reason %q", text)
	}
	return nil
}

// Reason records why a cell was assigned, and for deductions, which cell's
// implication forced it.
type Reason struct {
	Kind ReasonKind `json:"kind"`
	From int        `json:"from,omitempty"`
}

func known() Reason {
	return Reason{Kind: ReasonKnown, From: outside}
}

func decided() Reason {
	return Reason{Kind: ReasonDecided, From: outside}
}

func deduced(from int) Reason {
	return Reason{Kind: ReasonDeduced, From: from}
}

// stackEntry is one frame of the decision stack.
type stackEntry struct {
	cell   int
	reason Reason
}
