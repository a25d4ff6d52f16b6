package rule

import (
	"fmt"
	"slices"
	"strings"
)

// NeighborhoodType selects the shape of the neighborhood.
type NeighborhoodType uint8

const (
	// Moore is the full (2r+1)×(2r+1) square around the cell.
	Moore NeighborhoodType = iota

	// VonNeumann is the diamond of cells within Manhattan distance r.
	VonNeumann

	// Cross is the horizontal and vertical arms of length r.
	Cross

	// Hexagonal is a hex neighborhood emulated on the square grid.
	// It can be parsed but the search does not support it.
	Hexagonal
)

func (t NeighborhoodType) String() string {
	switch t {
	case Moore:
		return "Moore"
	case VonNeumann:
		return "von Neumann"
	case Cross:
		return "cross"
	case Hexagonal:
		return "hexagonal"
	default:
		return fmt.Sprintf("NeighborhoodType(%d)", uint8(t))
	}
}

// letter returns the neighborhood designator used in higher-range notation.
func (t NeighborhoodType) letter() string {
	switch t {
	case Moore:
		return "M"
	case VonNeumann:
		return "N"
	case Cross:
		return "+"
	case Hexagonal:
		return "H"
	default:
		return "?"
	}
}

// Size returns the number of neighbors at the given radius, excluding the
// center cell.
func (t NeighborhoodType) Size(radius int) int {
	switch t {
	case Moore:
		return 4 * radius * (radius + 1)
	case VonNeumann:
		return 2 * radius * (radius + 1)
	case Cross:
		return 4 * radius
	case Hexagonal:
		return 3 * radius * (radius + 1)
	default:
		return 0
	}
}

// Offset is a neighbor position relative to the center cell.
type Offset struct {
	X, Y int
}

// Coords lists the neighbor offsets at the given radius in a fixed x-major
// order. The order matters: cell wiring pairs each neighbor with the neighbor
// at the mirrored position, which is the same list reversed.
func (t NeighborhoodType) Coords(radius int) []Offset {
	coords := make([]Offset, 0, t.Size(radius))
	switch t {
	case Moore:
		for x := -radius; x <= radius; x++ {
			for y := -radius; y <= radius; y++ {
				if x != 0 || y != 0 {
					coords = append(coords, Offset{x, y})
				}
			}
		}
	case VonNeumann:
		for x := -radius; x <= radius; x++ {
			maxY := radius - abs(x)
			for y := -maxY; y <= maxY; y++ {
				if x != 0 || y != 0 {
					coords = append(coords, Offset{x, y})
				}
			}
		}
	case Cross:
		for x := -radius; x < 0; x++ {
			coords = append(coords, Offset{x, 0})
		}
		for y := -radius; y <= radius; y++ {
			if y != 0 {
				coords = append(coords, Offset{0, y})
			}
		}
		for x := 1; x <= radius; x++ {
			coords = append(coords, Offset{x, 0})
		}
	case Hexagonal:
		for x := -radius; x <= radius; x++ {
			minY := max(x-radius, -radius)
			maxY := min(x+radius, radius)
			for y := minY; y <= maxY; y++ {
				if x != 0 || y != 0 {
					coords = append(coords, Offset{x, y})
				}
			}
		}
	}
	return coords
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Rule is a parsed two-state outer-totalistic rule. It is a plain value;
// compile it into a Table before searching.
type Rule struct {
	// States is the number of cell states. The search supports only 2.
	States int

	// Neighborhood is the shape of the neighborhood.
	Neighborhood NeighborhoodType

	// Radius is the neighborhood radius.
	Radius int

	// Birth lists the living-neighbor counts that turn a dead cell alive.
	Birth []int

	// Survival lists the living-neighbor counts that keep a living cell
	// alive.
	Survival []int
}

// Default is the rule assumed when none is given.
func Default() Rule {
	r, err := Parse("R3,C2,S2,B3,N+")
	if err != nil {
		panic(err)
	}
	return r
}

// Size returns the number of neighbors, excluding the center cell.
func (r Rule) Size() int {
	return r.Neighborhood.Size(r.Radius)
}

// NeighborCoords lists the neighbor offsets in the order used for wiring.
func (r Rule) NeighborCoords() []Offset {
	return r.Neighborhood.Coords(r.Radius)
}

// ContainsB0 reports whether the rule births on zero neighbors.
func (r Rule) ContainsB0() bool {
	return slices.Contains(r.Birth, 0)
}

// checkConditions reports whether all birth and survival counts fit the
// neighborhood.
func (r Rule) checkConditions() bool {
	size := r.Size()
	for _, n := range r.Birth {
		if n > size {
			return false
		}
	}
	for _, n := range r.Survival {
		if n > size {
			return false
		}
	}
	return true
}

// String returns the canonical form of the rule: Life-like "B3/S23" notation
// when the rule fits it, higher-range "R3,C2,S2,B3,N+" notation otherwise.
// Rules with the same states, neighborhood type, radius and counts render to
// the same string whatever notation they were parsed from, so this also
// serves as the rule identity in saved searches and the solution archive.
func (r Rule) String() string {
	if r.Radius == 1 && r.States == 2 && r.Neighborhood != Cross {
		var b strings.Builder
		b.WriteString("B")
		for _, n := range sorted(r.Birth) {
			fmt.Fprintf(&b, "%d", n)
		}
		b.WriteString("/S")
		for _, n := range sorted(r.Survival) {
			fmt.Fprintf(&b, "%d", n)
		}
		switch r.Neighborhood {
		case VonNeumann:
			b.WriteString("V")
		case Hexagonal:
			b.WriteString("H")
		}
		return b.String()
	}
	return fmt.Sprintf("R%d,C%d,S%s,B%s,N%s",
		r.Radius, r.States,
		formatCounts(r.Survival), formatCounts(r.Birth),
		r.Neighborhood.letter())
}

func sorted(counts []int) []int {
	out := slices.Clone(counts)
	slices.Sort(out)
	return slices.Compact(out)
}

// formatCounts renders a count list with consecutive runs collapsed into
// "lo-hi" ranges, as in "2-3,5".
func formatCounts(counts []int) string {
	counts = sorted(counts)
	var b strings.Builder
	for i := 0; i < len(counts); {
		j := i
		for j+1 < len(counts) && counts[j+1] == counts[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteString(",")
		}
		if j > i {
			fmt.Fprintf(&b, "%d-%d", counts[i], counts[j])
		} else {
			fmt.Fprintf(&b, "%d", counts[i])
		}
		i = j + 1
	}
	return b.String()
}
