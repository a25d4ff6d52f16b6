package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Session returns the session with the given id.
// Returns ErrNotFound if no such session exists.
func (s *Store) Session(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, rule, config, status, created_at
		FROM sessions
		WHERE id = ?
	`, id)

	session, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	return session, nil
}

// ListSessions returns all sessions, newest first. Sessions created in the
// same nanosecond tie-break on id so the order is deterministic.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rule, config, status, created_at
		FROM sessions
		ORDER BY created_at DESC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if sessions == nil {
		sessions = []Session{}
	}

	return sessions, nil
}

// Solutions returns a session's found patterns in discovery order.
func (s *Store) Solutions(ctx context.Context, sessionID string) ([]Solution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, ordinal, rle, population, steps, found_at
		FROM solutions
		WHERE session_id = ?
		ORDER BY ordinal ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query solutions: %w", err)
	}
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, sol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}

	if solutions == nil {
		solutions = []Solution{}
	}

	return solutions, nil
}

// SolutionCount returns the number of patterns recorded for a session.
// A resumed search does not continue an existing session; it archives into
// a new session and numbers its finds from zero.
func (s *Store) SolutionCount(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM solutions WHERE session_id = ?
	`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count solutions: %w", err)
	}
	return count, nil
}

// scanSession scans one row into a Session. The scan argument is either
// (*sql.Row).Scan or (*sql.Rows).Scan.
func scanSession(scan func(...any) error) (Session, error) {
	var session Session
	var configJSON, statusText, createdAt string

	if err := scan(
		&session.ID, &session.Rule, &configJSON, &statusText, &createdAt,
	); err != nil {
		return Session{}, err
	}

	config, err := unmarshalConfig(configJSON)
	if err != nil {
		return Session{}, err
	}
	session.Config = config

	status, err := unmarshalStatus(statusText)
	if err != nil {
		return Session{}, err
	}
	session.Status = status

	created, err := unmarshalTime(createdAt)
	if err != nil {
		return Session{}, err
	}
	session.CreatedAt = created

	return session, nil
}

// scanSolution scans a row into a Solution.
func scanSolution(rows *sql.Rows) (Solution, error) {
	var sol Solution
	var steps int64
	var foundAt string

	if err := rows.Scan(
		&sol.SessionID, &sol.Ordinal, &sol.RLE, &sol.Population, &steps, &foundAt,
	); err != nil {
		return Solution{}, fmt.Errorf("scan solution: %w", err)
	}
	sol.Steps = uint64(steps)

	found, err := unmarshalTime(foundAt)
	if err != nil {
		return Solution{}, err
	}
	sol.FoundAt = found

	return sol, nil
}
