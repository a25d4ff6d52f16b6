package symmetry

import "fmt"

// Transformation is one of the 8 rotations and reflections of a rectangle,
// the elements of the dihedral group D8.
//
// When a search uses a transformation, each period the pattern is first
// transformed and then translated. Rn is the clockwise rotation by n quarter
// turns; Sn is the reflection that equals Rn composed with S0.
type Transformation uint8

const (
	// R0 is the identity.
	R0 Transformation = iota

	// R1 is the 90-degree clockwise rotation. It requires a square world
	// with no diagonal width.
	R1

	// R2 is the 180-degree rotation.
	R2

	// R3 is the 270-degree clockwise rotation. It requires a square world
	// with no diagonal width.
	R3

	// S0 is the vertical reflection (across the horizontal axis). It
	// requires no diagonal width.
	S0

	// S1 is the reflection across the main diagonal. It requires a square
	// world.
	S1

	// S2 is the horizontal reflection (across the vertical axis). It
	// requires no diagonal width.
	S2

	// S3 is the reflection across the antidiagonal. It requires a square
	// world.
	S3

	transformationCount
)

// Transformations lists all 8 transformations.
func Transformations() []Transformation {
	return []Transformation{R0, R1, R2, R3, S0, S1, S2, S3}
}

// ParseTransformation parses a transformation name like "R0" or "S2".
func ParseTransformation(s string) (Transformation, error) {
	for _, t := range Transformations() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transformation %q", s)
}

func (t Transformation) String() string {
	switch t {
	case R0, R1, R2, R3:
		return fmt.Sprintf("R%d", uint8(t))
	case S0, S1, S2, S3:
		return fmt.Sprintf("S%d", uint8(t)-4)
	default:
		return fmt.Sprintf("Transformation(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Transformation) MarshalText() ([]byte, error) {
	if t >= transformationCount {
		return nil, fmt.Errorf("invalid transformation %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transformation) UnmarshalText(text []byte) error {
	parsed, err := ParseTransformation(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// isReflection reports whether the transformation is one of the Sn.
func (t Transformation) isReflection() bool {
	return t >= S0
}

// index is the rotation count of an Rn, or the n of an Sn.
func (t Transformation) index() int {
	if t.isReflection() {
		return int(t - S0)
	}
	return int(t)
}

func rotation(i int) Transformation {
	return Transformation(i & 3)
}

func reflection(i int) Transformation {
	return S0 + Transformation(i&3)
}

// Inverse returns the transformation that undoes t.
func (t Transformation) Inverse() Transformation {
	if t.isReflection() {
		return t
	}
	return rotation(-t.index())
}

// Compose returns the transformation equal to applying other first and
// then t.
func (t Transformation) Compose(other Transformation) Transformation {
	i, j := t.index(), other.index()
	switch {
	case !t.isReflection() && !other.isReflection():
		return rotation(i + j)
	case t.isReflection() && other.isReflection():
		return rotation(i - j)
	case !t.isReflection():
		return reflection(i + j)
	default:
		return reflection(i - j)
	}
}

// IsElementOf reports whether the transformation is in the subgroup the
// symmetry names. A pattern with that symmetry is invariant under t.
func (t Transformation) IsElementOf(s Symmetry) bool {
	switch s {
	case C1:
		return t == R0
	case C2:
		return t == R0 || t == R2
	case C4:
		return !t.isReflection()
	case D2V:
		return t == R0 || t == S0
	case D2H:
		return t == R0 || t == S2
	case D2D:
		return t == R0 || t == S1
	case D2A:
		return t == R0 || t == S3
	case D4O:
		return t == R0 || t == R2 || t == S0 || t == S2
	case D4X:
		return t == R0 || t == R2 || t == S1 || t == S3
	case D8:
		return true
	default:
		return false
	}
}

// RequiresSquare reports whether the transformation only makes sense on a
// square world.
func (t Transformation) RequiresSquare() bool {
	return !t.IsElementOf(D4O)
}

// RequiresNoDiagonalWidth reports whether the transformation is incompatible
// with a diagonal width restriction.
func (t Transformation) RequiresNoDiagonalWidth() bool {
	return !t.IsElementOf(D4X)
}

// Apply transforms the coordinates around the origin.
func (t Transformation) Apply(x, y int) (int, int) {
	switch t {
	case R1:
		return -y, x
	case R2:
		return -x, -y
	case R3:
		return y, -x
	case S0:
		return x, -y
	case S1:
		return y, x
	case S2:
		return -x, y
	case S3:
		return -y, -x
	default:
		return x, y
	}
}

// ApplyWithSize transforms the coordinates around the center of a
// width×height world. For transformations that require a square world the
// result is only meaningful when width equals height.
func (t Transformation) ApplyWithSize(x, y, width, height int) (int, int) {
	switch t {
	case R1:
		return height - y - 1, x
	case R2:
		return width - x - 1, height - y - 1
	case R3:
		return y, width - x - 1
	case S0:
		return x, height - y - 1
	case S1:
		return y, x
	case S2:
		return width - x - 1, y
	case S3:
		return height - y - 1, width - x - 1
	default:
		return x, y
	}
}
