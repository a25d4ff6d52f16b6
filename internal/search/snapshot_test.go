package search

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/casrc/internal/rule"
)

func blockWorld(t *testing.T) *World {
	t.Helper()

	c := NewConfig("B3/S23", 4, 4, 1)
	c.AllowEmptyFront = true
	c.KnownCells = blockKnownCells(4, 4)

	w, err := NewWorld(c)
	require.NoError(t, err)
	require.Equal(t, Found, w.Search())
	return w
}

func TestSnapshot(t *testing.T) {
	w := blockWorld(t)

	grid := w.Snapshot(0)
	require.Len(t, grid, 4)
	for y, row := range grid {
		require.Len(t, row, 4)
		for x, state := range row {
			want := rule.Dead
			if (x == 1 || x == 2) && (y == 1 || y == 2) {
				want = rule.Alive
			}
			assert.Equal(t, want, state, "cell (%d, %d)", x, y)
		}
	}

	// The generation wraps modulo the period.
	assert.Equal(t, grid, w.Snapshot(3))
}

func TestRLE_Unknown(t *testing.T) {
	w, err := NewWorld(NewConfig("B3/S23", 2, 2, 1))
	require.NoError(t, err)

	assert.Equal(t, "x = 2, y = 2, rule = B3/S23\n??$\n??!\n", w.RLE(0, false))
	assert.Equal(t, "x = 2, y = 2, rule = B3/S23\n2?$2?!", w.RLE(0, true))
}

func TestRLE_Golden(t *testing.T) {
	w := blockWorld(t)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, "block_compact", []byte(w.RLE(0, true)))
	g.Assert(t, "block_plain", []byte(w.RLE(0, false)))
}

func TestEncodeRuns(t *testing.T) {
	assert.Equal(t, "", encodeRuns(""))
	assert.Equal(t, "o", encodeRuns("o"))
	assert.Equal(t, "3o", encodeRuns("ooo"))
	assert.Equal(t, "2b3o$2b!", encodeRuns("bbooo$bb!"))
}

func TestEncodeRuns_WrapsLongLines(t *testing.T) {
	body := strings.Repeat("bo", 50) + "!"
	encoded := encodeRuns(body)

	for _, line := range strings.Split(encoded, "\n") {
		assert.LessOrEqual(t, len(line), rleMaxLine)
	}
	assert.Equal(t, body, strings.ReplaceAll(encoded, "\n", ""))
}
