package store

import (
	"context"
	"fmt"

	"github.com/roach88/casrc/internal/search"
)

// CreateSession inserts a session record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Other constraint violations will still return errors.
func (s *Store) CreateSession(ctx context.Context, session Session) error {
	configJSON, err := marshalConfig(session.Config)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	statusText, err := marshalStatus(session.Status)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
		(id, rule, config, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		session.ID,
		session.Rule,
		configJSON,
		statusText,
		marshalTime(session.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

// SetSessionStatus updates the recorded status of a session.
// Returns ErrNotFound if the session does not exist.
func (s *Store) SetSessionStatus(ctx context.Context, id string, status search.Status) error {
	statusText, err := marshalStatus(status)
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET status = ? WHERE id = ?
	`, statusText, id)
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set session status: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set session status %s: %w", id, ErrNotFound)
	}

	return nil
}

// AppendSolution inserts a found pattern into the store.
// Uses ON CONFLICT(session_id, ordinal) DO NOTHING for idempotency: a second
// insert with the same session and ordinal keeps the first row.
//
// Note: The session referenced by SessionID must exist (foreign key
// constraint).
func (s *Store) AppendSolution(ctx context.Context, sol Solution) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO solutions
		(session_id, ordinal, rle, population, steps, found_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, ordinal) DO NOTHING
	`,
		sol.SessionID,
		sol.Ordinal,
		sol.RLE,
		sol.Population,
		int64(sol.Steps),
		marshalTime(sol.FoundAt),
	)
	if err != nil {
		return fmt.Errorf("append solution: %w", err)
	}

	return nil
}
