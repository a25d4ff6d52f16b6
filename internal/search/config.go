package search

import (
	"fmt"

	"github.com/roach88/casrc/internal/rule"
	"github.com/roach88/casrc/internal/symmetry"
)

// DefaultRule is the rule searched when the configuration names none.
const DefaultRule = "R3,C2,S2,B3,N+"

// SearchOrder determines how the searcher walks the world looking for the
// next undetermined cell.
type SearchOrder uint8

const (
	// OrderAuto lets the configuration check pick an order.
	OrderAuto SearchOrder = iota

	// RowFirst visits cells row by row.
	RowFirst

	// ColumnFirst visits cells column by column.
	ColumnFirst

	// Diagonal visits cells antidiagonal by antidiagonal. It requires a
	// square world and suits diagonal spaceships.
	Diagonal
)

func (o SearchOrder) String() string {
	switch o {
	case OrderAuto:
		return "auto"
	case RowFirst:
		return "row"
	case ColumnFirst:
		return "column"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("SearchOrder(%d)", uint8(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o SearchOrder) MarshalText() ([]byte, error) {
	if o > Diagonal {
		return nil, fmt.Errorf("invalid search order %d", uint8(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *SearchOrder) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "auto":
		*o = OrderAuto
	case "row", "r":
		*o = RowFirst
	case "column", "c":
		*o = ColumnFirst
	case "diagonal", "d":
		*o = Diagonal
	default:
		return fmt.Errorf("unknown search order %q", text)
	}
	return nil
}

// NewState is the tentative state the searcher assigns to an undetermined
// cell.
type NewState uint8

const (
	// DeadFirst tries dead before alive. This is the default.
	DeadFirst NewState = iota

	// AliveFirst tries alive before dead.
	AliveFirst

	// RandomChoice flips a seeded coin at every decision.
	RandomChoice
)

func (n NewState) String() string {
	switch n {
	case DeadFirst:
		return "dead"
	case AliveFirst:
		return "alive"
	case RandomChoice:
		return "random"
	default:
		return fmt.Sprintf("NewState(%d)", uint8(n))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n NewState) MarshalText() ([]byte, error) {
	if n > RandomChoice {
		return nil, fmt.Errorf("invalid new state %d", uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NewState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "dead", "d":
		*n = DeadFirst
	case "alive", "a":
		*n = AliveFirst
	case "random", "r":
		*n = RandomChoice
	default:
		return fmt.Errorf("unknown new state %q", text)
	}
	return nil
}

// KnownCell pins one cell of the world to a state before the search starts.
type KnownCell struct {
	X     int        `yaml:"x" json:"x"`
	Y     int        `yaml:"y" json:"y"`
	T     int        `yaml:"t" json:"t"`
	State rule.State `yaml:"state" json:"state"`
}

// Config describes a search.
//
// The zero value is not usable; at least Width, Height and Period must be
// set. NewConfig fills the usual defaults.
type Config struct {
	// Rule is the rule string of the cellular automaton. Empty means
	// DefaultRule.
	Rule string `yaml:"rule,omitempty" json:"rule,omitempty"`

	// Width and Height bound the pattern; cells outside are dead.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// Period is the number of generations after which the pattern repeats,
	// up to the transformation and translation.
	Period int `yaml:"period" json:"period"`

	// Dx and Dy translate the pattern each period: the cell at (x, y) on
	// generation P must equal the cell at (x+dx, y+dy) on generation 0.
	Dx int `yaml:"dx,omitempty" json:"dx,omitempty"`
	Dy int `yaml:"dy,omitempty" json:"dy,omitempty"`

	// DiagonalWidth forces cells with |x-y| >= DiagonalWidth dead. Zero
	// means no restriction. A nonzero value requires a square world.
	DiagonalWidth int `yaml:"diagonal_width,omitempty" json:"diagonal_width,omitempty"`

	// Symmetry the pattern must be invariant under.
	Symmetry symmetry.Symmetry `yaml:"symmetry,omitempty" json:"symmetry,omitempty"`

	// Transformation applied to the pattern each period, before the
	// translation.
	Transformation symmetry.Transformation `yaml:"transformation,omitempty" json:"transformation,omitempty"`

	// SearchOrder picks the walk over undetermined cells. OrderAuto picks
	// the shortest-edge order during validation.
	SearchOrder SearchOrder `yaml:"search_order,omitempty" json:"search_order,omitempty"`

	// NewState picks the tentative state of a decision.
	NewState NewState `yaml:"new_state,omitempty" json:"new_state,omitempty"`

	// Seed seeds the random number generator used by RandomChoice. Nil
	// draws a seed from the global generator.
	Seed *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	// MaxPopulation bounds the number of living cells on generation 0.
	// Nil means unbounded.
	MaxPopulation *int `yaml:"max_population,omitempty" json:"max_population,omitempty"`

	// ReduceMax lowers MaxPopulation to one below each found pattern's
	// population, so the search converges on a minimal pattern.
	ReduceMax bool `yaml:"reduce_max,omitempty" json:"reduce_max,omitempty"`

	// AllowEmptyFront disables the requirement that the search front
	// contains a living cell, permitting the empty pattern.
	AllowEmptyFront bool `yaml:"allow_empty_front,omitempty" json:"allow_empty_front,omitempty"`

	// KnownCells pins cells to states before the search starts.
	KnownCells []KnownCell `yaml:"known_cells,omitempty" json:"known_cells,omitempty"`
}

// NewConfig returns a configuration for the given rule and world size with
// all other fields at their defaults.
func NewConfig(ruleStr string, width, height, period int) Config {
	return Config{
		Rule:   ruleStr,
		Width:  width,
		Height: height,
		Period: period,
	}
}

// RuleString returns the rule string with the default applied.
func (c Config) RuleString() string {
	if c.Rule == "" {
		return DefaultRule
	}
	return c.Rule
}

// parseRule parses the rule string and compiles its implication table.
func (c Config) parseRule() (*rule.Table, error) {
	r, err := rule.Parse(c.RuleString())
	if err != nil {
		return nil, newConfigError(ErrCodeInvalidRule, "rule", "%v", err)
	}
	table, err := rule.NewTable(r)
	if err != nil {
		return nil, newConfigError(ErrCodeUnsupportedRule, "rule", "%v", err)
	}
	return table, nil
}

// requiresSquare reports whether any part of the configuration needs a
// square world.
func (c Config) requiresSquare() bool {
	return c.Symmetry.RequiresSquare() ||
		c.Transformation.RequiresSquare() ||
		c.DiagonalWidth > 0 ||
		c.SearchOrder == Diagonal
}

// requiresNoDiagonalWidth reports whether the symmetry or transformation
// rules out a diagonal width restriction.
func (c Config) requiresNoDiagonalWidth() bool {
	return c.Symmetry.RequiresNoDiagonalWidth() ||
		c.Transformation.RequiresNoDiagonalWidth()
}

// checked validates the geometry of the configuration and resolves the
// automatic search order. The rule is validated separately by parseRule.
func (c Config) checked() (Config, error) {
	if c.Width <= 0 || c.Height <= 0 || c.Period <= 0 {
		return c, newConfigError(ErrCodeInvalidSize, "",
			"width, height and period must be positive (got %dx%d, period %d)",
			c.Width, c.Height, c.Period)
	}
	if c.DiagonalWidth < 0 {
		return c, newConfigError(ErrCodeInvalidSize, "diagonal_width",
			"diagonal width must not be negative (got %d)", c.DiagonalWidth)
	}

	if c.MaxPopulation != nil && *c.MaxPopulation < 0 {
		return c, newConfigError(ErrCodeInvalidMaxPopulation, "max_population",
			"population bound must not be negative (got %d)", *c.MaxPopulation)
	}

	if c.Width != c.Height && c.requiresSquare() {
		return c, newConfigError(ErrCodeNotSquare, "",
			"%v symmetry, %v transformation, diagonal width, or diagonal order needs a square world (got %dx%d)",
			c.Symmetry, c.Transformation, c.Width, c.Height)
	}

	if c.DiagonalWidth > 0 && c.requiresNoDiagonalWidth() {
		return c, newConfigError(ErrCodeHasDiagonalWidth, "diagonal_width",
			"%v symmetry or %v transformation cannot keep a diagonal band",
			c.Symmetry, c.Transformation)
	}

	if !c.Symmetry.TranslationIsValid(c.Dx, c.Dy) {
		return c, newConfigError(ErrCodeInvalidTranslation, "",
			"translation (%d, %d) does not commute with %v", c.Dx, c.Dy, c.Symmetry)
	}

	for _, k := range c.KnownCells {
		if k.X < 0 || k.X >= c.Width || k.Y < 0 || k.Y >= c.Height || k.T < 0 || k.T >= c.Period {
			return c, newConfigError(ErrCodeKnownCellOutOfBounds, "known_cells",
				"cell (%d, %d, %d) is outside the %dx%dx%d world", k.X, k.Y, k.T,
				c.Width, c.Height, c.Period)
		}
		if !k.State.Known() {
			return c, newConfigError(ErrCodeKnownCellOutOfBounds, "known_cells",
				"cell (%d, %d, %d) has no state to pin", k.X, k.Y, k.T)
		}
	}

	if c.SearchOrder == OrderAuto {
		c.SearchOrder = c.autoSearchOrder()
	}

	return c, nil
}

// autoSearchOrder picks the order that searches the shortest effective edge
// first, after halving edges that a reflection makes redundant.
func (c Config) autoSearchOrder() SearchOrder {
	width := c.Width
	if c.Transformation == symmetry.S2 || symmetry.S2.IsElementOf(c.Symmetry) {
		width = (c.Width + 1) / 2
	}

	height := c.Height
	if c.Transformation == symmetry.S0 || symmetry.S0.IsElementOf(c.Symmetry) {
		height = (c.Height + 1) / 2
	}

	diagonalWidth := 0
	if c.Transformation == symmetry.S1 || symmetry.S1.IsElementOf(c.Symmetry) {
		diagonalWidth = c.DiagonalWidth
		if diagonalWidth == 0 {
			diagonalWidth = c.Width
		}
	} else if c.DiagonalWidth > 0 {
		diagonalWidth = 2*c.DiagonalWidth + 1
	}

	switch {
	case diagonalWidth > 0 && diagonalWidth <= width && diagonalWidth <= height:
		return Diagonal
	case width < height:
		return RowFirst
	case width > height:
		return ColumnFirst
	case abs(c.Dx) < abs(c.Dy):
		return RowFirst
	default:
		return ColumnFirst
	}
}

// Validate reports whether the configuration can start a search.
func (c Config) Validate() error {
	if _, err := c.parseRule(); err != nil {
		return err
	}
	_, err := c.checked()
	return err
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
