package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLifeLike(t *testing.T) {
	tests := []struct {
		input string
		want  Rule
	}{
		{
			input: "B3/S23",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{2, 3},
			},
		},
		{
			input: "b3s23",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{2, 3},
			},
		},
		{
			input: "23/3",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{2, 3},
			},
		},
		{
			input: "B2/S",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{2},
				Survival:     nil,
			},
		},
		{
			input: "B13/S012V",
			want: Rule{
				States:       2,
				Neighborhood: VonNeumann,
				Radius:       1,
				Birth:        []int{1, 3},
				Survival:     []int{0, 1, 2},
			},
		},
		{
			input: "B245/S3H",
			want: Rule{
				States:       2,
				Neighborhood: Hexagonal,
				Radius:       1,
				Birth:        []int{2, 4, 5},
				Survival:     []int{3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHigherRange(t *testing.T) {
	tests := []struct {
		input string
		want  Rule
	}{
		{
			input: "R3,C2,S2,B3,N+",
			want: Rule{
				States:       2,
				Neighborhood: Cross,
				Radius:       3,
				Birth:        []int{3},
				Survival:     []int{2},
			},
		},
		{
			input: "R1,C0,S2-3,B3",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{2, 3},
			},
		},
		{
			input: "R3,C2,S6-10,12,B3,N+",
			want: Rule{
				States:       2,
				Neighborhood: Cross,
				Radius:       3,
				Birth:        []int{3},
				Survival:     []int{6, 7, 8, 9, 10, 12},
			},
		},
		{
			input: "R2,C2,S1,B1,NN",
			want: Rule{
				States:       2,
				Neighborhood: VonNeumann,
				Radius:       2,
				Birth:        []int{1},
				Survival:     []int{1},
			},
		},
		{
			// Larger than Life notation; M1 counts the center cell.
			input: "R1,C0,M1,S2..3,B3..3,NM",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{1, 2},
			},
		},
		{
			// Kellie Evans notation; the center cell is always counted.
			input: "1,3,3,3,4",
			want: Rule{
				States:       2,
				Neighborhood: Moore,
				Radius:       1,
				Birth:        []int{3},
				Survival:     []int{2, 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input string
		code  ParseErrorCode
	}{
		{"", ErrCodeInvalidSyntax},
		{"life", ErrCodeInvalidSyntax},
		{"B3/S23/X", ErrCodeInvalidSyntax},
		{"R3,S2,B3", ErrCodeInvalidSyntax},
		{"B9/S23", ErrCodeInvalidCondition},
		{"R1,C2,S2,B10,NN", ErrCodeInvalidCondition},
		{"1,3,3,0,4", ErrCodeInvalidCondition},
		{"B3/S23/1", ErrCodeTooFewStates},
		{"R9999999,C2,S2,B3,N+", ErrCodeIntegerOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
		})
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"B3/S23", "B3/S23"},
		{"b3s23", "B3/S23"},
		{"23/3", "B3/S23"},
		{"1,3,3,3,4", "B3/S23"},
		{"B13/S012V", "B13/S012V"},
		{"R3,C2,S2,B3,N+", "R3,C2,S2,B3,N+"},
		{"R2,C2,S2-4,6,B3,NN", "R2,C2,S2-4,6,B3,NN"},
		{"R1,C0,S2-3,B3", "B3/S23"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestDefaultRule(t *testing.T) {
	r := Default()
	assert.Equal(t, "R3,C2,S2,B3,N+", r.String())
	assert.Equal(t, 12, r.Size())
}

func TestNeighborhoodCoords(t *testing.T) {
	moore := Moore.Coords(1)
	assert.Equal(t, []Offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}, moore)

	vonNeumann := VonNeumann.Coords(1)
	assert.Equal(t, []Offset{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}, vonNeumann)

	cross := Cross.Coords(2)
	assert.Equal(t, []Offset{
		{-2, 0}, {-1, 0},
		{0, -2}, {0, -1}, {0, 1}, {0, 2},
		{1, 0}, {2, 0},
	}, cross)

	for radius := 1; radius <= 4; radius++ {
		assert.Len(t, Moore.Coords(radius), Moore.Size(radius))
		assert.Len(t, VonNeumann.Coords(radius), VonNeumann.Size(radius))
		assert.Len(t, Cross.Coords(radius), Cross.Size(radius))
		assert.Len(t, Hexagonal.Coords(radius), Hexagonal.Size(radius))
	}
}

// Wiring pairs each neighbor with the one at the mirrored offset by walking
// the list from both ends, so reversal must be the same as negation.
func TestCoordsMirrorOrder(t *testing.T) {
	for _, shape := range []NeighborhoodType{Moore, VonNeumann, Cross} {
		for radius := 1; radius <= 3; radius++ {
			coords := shape.Coords(radius)
			n := len(coords)
			for i, c := range coords {
				mirror := coords[n-1-i]
				assert.Equal(t, Offset{-c.X, -c.Y}, mirror,
					"%v radius %d index %d", shape, radius, i)
			}
		}
	}
}
