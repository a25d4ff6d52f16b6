package rule

import "fmt"

// State is the three-valued state of a cell.
//
// The two known states use one-hot encodings so that a state can be folded
// into a two-bit field of a Descriptor, with 0b00 meaning unknown. This
// makes setting and clearing a known state the same XOR operation.
type State uint8

const (
	// Unknown means the search has not yet determined the cell.
	Unknown State = 0b00

	// Dead is a determined dead cell.
	Dead State = 0b01

	// Alive is a determined living cell.
	Alive State = 0b10
)

// Known reports whether the state is Dead or Alive.
func (s State) Known() bool {
	return s == Dead || s == Alive
}

// Flip returns the opposite known state.
// Flipping Unknown returns Unknown.
func (s State) Flip() State {
	switch s {
	case Dead:
		return Alive
	case Alive:
		return Dead
	default:
		return Unknown
	}
}

// String returns "0" for Dead, "1" for Alive and "?" for Unknown.
func (s State) String() string {
	switch s {
	case Dead:
		return "0"
	case Alive:
		return "1"
	case Unknown:
		return "?"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case Dead, Alive, Unknown:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid state %d", uint8(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "0", "dead":
		*s = Dead
	case "1", "alive":
		*s = Alive
	case "?", "unknown":
		*s = Unknown
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}
