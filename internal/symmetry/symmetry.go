package symmetry

import "fmt"

// Symmetry is a subgroup of D8 that a pattern is required to be invariant
// under. The names follow Logic Life Search: Cn are the cyclic groups, D2x
// the single reflections (the suffix drawing the mirror axis), D4+ and D4X
// the two four-element dihedral groups, and D8 the full group.
type Symmetry uint8

const (
	// C1 is the trivial group: no symmetry.
	C1 Symmetry = iota

	// C2 is invariance under 180-degree rotation.
	C2

	// C4 is invariance under 90-degree rotation. It requires a square world
	// with no diagonal width.
	C4

	// D2H is invariance under horizontal reflection, written "D2|". It
	// requires no diagonal width.
	D2H

	// D2V is invariance under vertical reflection, written "D2-". It
	// requires no diagonal width.
	D2V

	// D2D is invariance under main-diagonal reflection, written "D2\". It
	// requires a square world.
	D2D

	// D2A is invariance under antidiagonal reflection, written "D2/". It
	// requires a square world.
	D2A

	// D4O is invariance under both axis reflections, written "D4+". It
	// requires no diagonal width.
	D4O

	// D4X is invariance under both diagonal reflections. It requires a
	// square world.
	D4X

	// D8 is invariance under the full dihedral group. It requires a square
	// world with no diagonal width.
	D8

	symmetryCount
)

// Symmetries lists all 10 symmetries.
func Symmetries() []Symmetry {
	return []Symmetry{C1, C2, C4, D2H, D2V, D2D, D2A, D4O, D4X, D8}
}

// ParseSymmetry parses a symmetry name like "C1" or "D2|".
func ParseSymmetry(s string) (Symmetry, error) {
	for _, sym := range Symmetries() {
		if sym.String() == s {
			return sym, nil
		}
	}
	return 0, fmt.Errorf("unknown symmetry %q", s)
}

func (s Symmetry) String() string {
	switch s {
	case C1:
		return "C1"
	case C2:
		return "C2"
	case C4:
		return "C4"
	case D2H:
		return "D2|"
	case D2V:
		return "D2-"
	case D2D:
		return `D2\`
	case D2A:
		return "D2/"
	case D4O:
		return "D4+"
	case D4X:
		return "D4X"
	case D8:
		return "D8"
	default:
		return fmt.Sprintf("Symmetry(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Symmetry) MarshalText() ([]byte, error) {
	if s >= symmetryCount {
		return nil, fmt.Errorf("invalid symmetry %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symmetry) UnmarshalText(text []byte) error {
	parsed, err := ParseSymmetry(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsSubgroupOf reports whether every transformation in s is also in other.
// A pattern with symmetry other then automatically has symmetry s.
func (s Symmetry) IsSubgroupOf(other Symmetry) bool {
	if s == other || s == C1 || other == D8 {
		return true
	}
	switch s {
	case C2:
		return other == C4 || other == D4O || other == D4X
	case C4:
		return false
	case D2H, D2V:
		return other == D4O
	case D2D, D2A:
		return other == D4X
	default:
		return false
	}
}

// RequiresSquare reports whether the symmetry only makes sense on a square
// world.
func (s Symmetry) RequiresSquare() bool {
	return !s.IsSubgroupOf(D4O)
}

// RequiresNoDiagonalWidth reports whether the symmetry is incompatible with
// a diagonal width restriction.
func (s Symmetry) RequiresNoDiagonalWidth() bool {
	return !s.IsSubgroupOf(D4X)
}

// TranslationCondition is the constraint a per-period translation must
// satisfy to commute with a symmetry.
type TranslationCondition uint8

const (
	// AnyTranslation allows every (dx, dy).
	AnyTranslation TranslationCondition = iota

	// NoHorizontal requires dx = 0.
	NoHorizontal

	// NoVertical requires dy = 0.
	NoVertical

	// NoTranslation requires dx = dy = 0.
	NoTranslation

	// DiagonalTranslation requires dx = dy.
	DiagonalTranslation

	// AntidiagonalTranslation requires dx = -dy.
	AntidiagonalTranslation
)

// TranslationCondition returns the constraint translations must satisfy
// under the symmetry.
func (s Symmetry) TranslationCondition() TranslationCondition {
	switch s {
	case C1:
		return AnyTranslation
	case D2H:
		return NoHorizontal
	case D2V:
		return NoVertical
	case D2D:
		return DiagonalTranslation
	case D2A:
		return AntidiagonalTranslation
	default:
		return NoTranslation
	}
}

// TranslationIsValid reports whether the translation commutes with every
// transformation in the symmetry.
func (s Symmetry) TranslationIsValid(dx, dy int) bool {
	switch s.TranslationCondition() {
	case AnyTranslation:
		return true
	case NoHorizontal:
		return dx == 0
	case NoVertical:
		return dy == 0
	case DiagonalTranslation:
		return dx == dy
	case AntidiagonalTranslation:
		return dx == -dy
	default:
		return dx == 0 && dy == 0
	}
}

// Transformations lists the elements of the subgroup.
func (s Symmetry) Transformations() []Transformation {
	var out []Transformation
	for _, t := range Transformations() {
		if t.IsElementOf(s) {
			out = append(out, t)
		}
	}
	return out
}
