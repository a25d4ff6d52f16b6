package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformationGroupLaws(t *testing.T) {
	for _, tr := range Transformations() {
		assert.Equal(t, R0, tr.Inverse().Compose(tr), "inverse of %v", tr)
		assert.Equal(t, R0, tr.Compose(tr.Inverse()), "inverse of %v", tr)
	}

	const x, y = 1, 2
	for _, t1 := range Transformations() {
		for _, t2 := range Transformations() {
			x2, y2 := t2.Apply(x, y)
			wantX, wantY := t1.Apply(x2, y2)
			gotX, gotY := t1.Compose(t2).Apply(x, y)
			assert.Equal(t, [2]int{wantX, wantY}, [2]int{gotX, gotY},
				"%v after %v", t1, t2)
		}
	}
}

func TestSubgroupMatchesMembership(t *testing.T) {
	for _, s1 := range Symmetries() {
		for _, s2 := range Symmetries() {
			allMembers := true
			for _, tr := range s1.Transformations() {
				if !tr.IsElementOf(s2) {
					allMembers = false
					break
				}
			}
			assert.Equal(t, allMembers, s1.IsSubgroupOf(s2), "%v vs %v", s1, s2)
		}
	}
}

func TestSymmetryShapeRequirements(t *testing.T) {
	for _, s := range Symmetries() {
		anySquare := false
		anyNoDiagonal := false
		for _, tr := range s.Transformations() {
			anySquare = anySquare || tr.RequiresSquare()
			anyNoDiagonal = anyNoDiagonal || tr.RequiresNoDiagonalWidth()
		}
		assert.Equal(t, anySquare, s.RequiresSquare(), "%v", s)
		assert.Equal(t, anyNoDiagonal, s.RequiresNoDiagonalWidth(), "%v", s)
	}
}

// A translation is valid for a symmetry exactly when it commutes with every
// transformation in the subgroup.
func TestTranslationConditions(t *testing.T) {
	const x, y = 10, 20
	for _, s := range Symmetries() {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				commutes := true
				for _, tr := range s.Transformations() {
					x1, y1 := tr.Apply(x, y)
					x2, y2 := tr.Apply(x+dx, y+dy)
					if x2 != x1+dx || y2 != y1+dy {
						commutes = false
						break
					}
				}
				assert.Equal(t, commutes, s.TranslationIsValid(dx, dy),
					"%v with (%d, %d)", s, dx, dy)
			}
		}
	}
}

func TestApplyWithSize(t *testing.T) {
	// 5×3 world, cell (1, 2).
	tests := []struct {
		tr     Transformation
		w, h   int
		wantX  int
		wantY  int
	}{
		{R0, 5, 3, 1, 2},
		{R2, 5, 3, 3, 0},
		{S0, 5, 3, 1, 0},
		{S2, 5, 3, 3, 2},
		// 4×4 world, cell (1, 2).
		{R1, 4, 4, 1, 1},
		{R3, 4, 4, 2, 2},
		{S1, 4, 4, 2, 1},
		{S3, 4, 4, 1, 2},
	}

	for _, tt := range tests {
		gotX, gotY := tt.tr.ApplyWithSize(1, 2, tt.w, tt.h)
		assert.Equal(t, [2]int{tt.wantX, tt.wantY}, [2]int{gotX, gotY}, "%v", tt.tr)
	}

	// Reflections are involutions around the same center.
	for _, tr := range []Transformation{S0, S1, S2, S3} {
		x, y := tr.ApplyWithSize(1, 2, 4, 4)
		x, y = tr.ApplyWithSize(x, y, 4, 4)
		assert.Equal(t, [2]int{1, 2}, [2]int{x, y}, "%v", tr)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, tr := range Transformations() {
		parsed, err := ParseTransformation(tr.String())
		require.NoError(t, err)
		assert.Equal(t, tr, parsed)
	}
	for _, s := range Symmetries() {
		parsed, err := ParseSymmetry(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseTransformation("R4")
	assert.Error(t, err)
	_, err = ParseSymmetry("D16")
	assert.Error(t, err)
}

func TestTextMarshaling(t *testing.T) {
	text, err := D2D.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, `D2\`, string(text))

	var s Symmetry
	require.NoError(t, s.UnmarshalText([]byte("D4+")))
	assert.Equal(t, D4O, s)

	var tr Transformation
	require.NoError(t, tr.UnmarshalText([]byte("S3")))
	assert.Equal(t, S3, tr)
}
