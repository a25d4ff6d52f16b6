package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, input string) *Table {
	t.Helper()
	r, err := Parse(input)
	require.NoError(t, err)
	table, err := NewTable(r)
	require.NoError(t, err)
	return table
}

func TestTableLifeFullyKnown(t *testing.T) {
	table := mustTable(t, "B3/S23")
	require.Equal(t, 8, table.Size())
	require.Equal(t, 1, table.Radius())

	tests := []struct {
		name    string
		dead    int
		alive   int
		current State
		want    Implication
	}{
		{"dead cell with 3 neighbors is born", 5, 3, Dead, SuccessorAlive},
		{"dead cell with 2 neighbors stays dead", 6, 2, Dead, SuccessorDead},
		{"live cell with 2 neighbors survives", 6, 2, Alive, SuccessorAlive},
		{"live cell with 3 neighbors survives", 5, 3, Alive, SuccessorAlive},
		{"live cell with 4 neighbors dies", 4, 4, Alive, SuccessorDead},
		{"live cell with 1 neighbor dies", 7, 1, Alive, SuccessorDead},
		{"unknown cell with 0 neighbors dies", 8, 0, Unknown, SuccessorDead},
		{"unknown cell with 4 neighbors dies", 4, 4, Unknown, SuccessorDead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Implies(NewDescriptor(tt.dead, tt.alive, Unknown, tt.current))
			assert.True(t, got.Has(tt.want), "got %v", got)
		})
	}
}

func TestTableLifePartiallyKnown(t *testing.T) {
	table := mustTable(t, "B3/S23")

	// Four living neighbors already rule out birth and survival, no matter
	// how the remaining neighbors resolve.
	d := table.Implies(NewDescriptor(0, 4, Unknown, Unknown))
	assert.True(t, d.Has(SuccessorDead), "got %v", d)

	// One living neighbor and seven undetermined leaves everything open.
	open := table.Implies(NewDescriptor(0, 1, Unknown, Unknown))
	assert.Equal(t, Implication(0), open)
}

func TestTableLifeConflict(t *testing.T) {
	table := mustTable(t, "B3/S23")

	// Birth on 3 forces a living successor, so a dead successor conflicts.
	conflict := table.Implies(NewDescriptor(5, 3, Dead, Dead))
	assert.True(t, conflict.Has(Conflict), "got %v", conflict)

	// A living successor over a dead cell with 2 neighbors conflicts.
	conflict = table.Implies(NewDescriptor(6, 2, Alive, Dead))
	assert.True(t, conflict.Has(Conflict), "got %v", conflict)

	// A living successor over a live cell with 2 neighbors is consistent.
	fine := table.Implies(NewDescriptor(6, 2, Alive, Alive))
	assert.False(t, fine.Has(Conflict), "got %v", fine)
}

func TestTableLifeDeducesCurrent(t *testing.T) {
	table := mustTable(t, "B3/S23")

	// 2 living neighbors with a living successor: only survival explains it,
	// so the cell itself must be alive.
	d := table.Implies(NewDescriptor(6, 2, Alive, Unknown))
	assert.True(t, d.Has(CurrentAlive), "got %v", d)
}

func TestTableLifeDeducesNeighborhood(t *testing.T) {
	table := mustTable(t, "B3/S23")

	// Dead cell, living successor, 2 living and 5 dead neighbors known: the
	// one undetermined neighbor must be alive to reach a birth count.
	d := table.Implies(NewDescriptor(5, 2, Alive, Dead))
	assert.True(t, d.Has(NeighborhoodAlive), "got %v", d)

	// Live cell, living successor, 3 living and 4 dead neighbors known: a
	// fourth living neighbor would kill it, so the rest must be dead.
	d = table.Implies(NewDescriptor(4, 3, Alive, Alive))
	assert.True(t, d.Has(NeighborhoodDead), "got %v", d)
}

func TestTableCrossRule(t *testing.T) {
	table := mustTable(t, "R3,C2,S2,B3,N+")
	require.Equal(t, 12, table.Size())
	require.Equal(t, 3, table.Radius())

	d := table.Implies(NewDescriptor(9, 3, Unknown, Dead))
	assert.True(t, d.Has(SuccessorAlive), "got %v", d)

	d = table.Implies(NewDescriptor(10, 2, Unknown, Alive))
	assert.True(t, d.Has(SuccessorAlive), "got %v", d)

	d = table.Implies(NewDescriptor(8, 4, Unknown, Unknown))
	assert.True(t, d.Has(SuccessorDead), "got %v", d)
}

func TestTableDegenerateEmptyNeighborhood(t *testing.T) {
	table := mustTable(t, "R0,C2,S,B,N+")
	require.Equal(t, 0, table.Size())

	// With no neighbors and no conditions, every cell dies.
	d := table.Implies(NewDescriptor(0, 0, Unknown, Alive))
	assert.True(t, d.Has(SuccessorDead), "got %v", d)
	d = table.Implies(NewDescriptor(0, 0, Unknown, Unknown))
	assert.True(t, d.Has(SuccessorDead), "got %v", d)
}

func TestNewTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"B0", "B02/S1"},
		{"hexagonal", "B245/S3H"},
		{"generations", "B3/S23/3"},
		{"too large", "R3,C2,S2,B3,NM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.input)
			require.NoError(t, err)
			_, err = NewTable(r)
			require.Error(t, err)
			assert.True(t, IsUnsupported(err), "got %v", err)
		})
	}
}
