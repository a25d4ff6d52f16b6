package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/casrc/internal/rule"
	"github.com/roach88/casrc/internal/search"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "casrc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func testConfig(t *testing.T) search.Config {
	t.Helper()

	seed := uint64(42)
	maxPop := 12

	c := search.NewConfig("B3/S23", 5, 5, 2)
	c.Dy = 1
	c.NewState = search.RandomChoice
	c.Seed = &seed
	c.MaxPopulation = &maxPop
	c.KnownCells = []search.KnownCell{{X: 1, Y: 2, T: 0, State: rule.Alive}}
	require.NoError(t, c.Validate())
	return c
}

func testSession(t *testing.T, createdAt time.Time) Session {
	t.Helper()

	session := NewSession(testConfig(t))
	session.CreatedAt = createdAt
	return session
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.verifyPragma("journal_mode", "wal"))
	require.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	require.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casrc.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpen_SetsSchemaVersion(t *testing.T) {
	s := openStore(t)

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	created := time.Date(2025, 11, 3, 9, 30, 0, 123456789, time.UTC)
	session := testSession(t, created)
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.Session(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "B3/S23", got.Rule)
	assert.Equal(t, search.Initial, got.Status)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, session.Config, got.Config)
}

func TestSession_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Session(ctx, "no-such-session")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateSession_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	session := testSession(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, session))

	// A second insert with the same id changes nothing.
	session.Rule = "B36/S23"
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.Session(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "B3/S23", got.Rule)

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestListSessions_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	older := testSession(t, time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC))
	newer := testSession(t, time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, older))
	require.NoError(t, s.CreateSession(ctx, newer))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
	assert.Equal(t, older.ID, sessions[1].ID)
}

func TestListSessions_Empty(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestSetSessionStatus(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	session := testSession(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, session))

	require.NoError(t, s.SetSessionStatus(ctx, session.ID, search.NoMoreSolutions))

	got, err := s.Session(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, search.NoMoreSolutions, got.Status)
}

func TestSetSessionStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.SetSessionStatus(ctx, "no-such-session", search.Found)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSolution_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	session := testSession(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, session))

	found := []Solution{
		{
			SessionID:  session.ID,
			Ordinal:    0,
			RLE:        "x = 4, y = 4, rule = B3/S23\n$b2o$b2o$!",
			Population: 4,
			Steps:      117,
			FoundAt:    time.Date(2025, 11, 3, 9, 31, 0, 0, time.UTC),
		},
		{
			SessionID:  session.ID,
			Ordinal:    1,
			RLE:        "x = 4, y = 4, rule = B3/S23\n2o2$2o$!",
			Population: 4,
			Steps:      242,
			FoundAt:    time.Date(2025, 11, 3, 9, 32, 0, 0, time.UTC),
		},
	}
	for _, sol := range found {
		require.NoError(t, s.AppendSolution(ctx, sol))
	}

	solutions, err := s.Solutions(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, found, solutions)

	count, err := s.SolutionCount(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAppendSolution_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	session := testSession(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, session))

	sol := Solution{
		SessionID:  session.ID,
		Ordinal:    0,
		RLE:        "x = 4, y = 4, rule = B3/S23\n$b2o$b2o$!",
		Population: 4,
		Steps:      117,
		FoundAt:    time.Date(2025, 11, 3, 9, 31, 0, 0, time.UTC),
	}
	require.NoError(t, s.AppendSolution(ctx, sol))

	// Re-recording the same ordinal keeps the first row.
	sol.Steps = 999
	require.NoError(t, s.AppendSolution(ctx, sol))

	solutions, err := s.Solutions(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, uint64(117), solutions[0].Steps)
}

func TestAppendSolution_RequiresSession(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.AppendSolution(ctx, Solution{
		SessionID: "no-such-session",
		Ordinal:   0,
		RLE:       "x = 1, y = 1, rule = B3/S23\n!",
		FoundAt:   time.Now(),
	})
	require.Error(t, err)
}

func TestSolutions_Empty(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	session := testSession(t, time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC))
	require.NoError(t, s.CreateSession(ctx, session))

	solutions, err := s.Solutions(ctx, session.ID)
	require.NoError(t, err)
	assert.NotNil(t, solutions)
	assert.Empty(t, solutions)

	count, err := s.SolutionCount(ctx, session.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
