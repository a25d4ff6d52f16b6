package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/casrc/internal/rule"
	"github.com/roach88/casrc/internal/search"
)

// ErrNotFound is returned when a session id matches no row.
var ErrNotFound = errors.New("session not found")

// Session is one archived search.
type Session struct {
	// ID is the UUID the session was created with.
	ID string

	// Rule is the canonical rule string, denormalized from the
	// configuration so sessions can be filtered without parsing JSON.
	Rule string

	// Config is the full search configuration.
	Config search.Config

	// Status is the last recorded search status.
	Status search.Status

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time
}

// Solution is one pattern a session found.
type Solution struct {
	SessionID string

	// Ordinal numbers the session's solutions from zero in discovery
	// order.
	Ordinal int

	// RLE is the compact run-length encoding of generation 0.
	RLE string

	// Population is the number of living cells on generation 0.
	Population int

	// Steps is the session's step count when the pattern was found.
	Steps uint64

	// FoundAt is the discovery time in UTC.
	FoundAt time.Time
}

// NewSession builds a session for the given configuration with a fresh
// UUID and the current time. Version 7 ids sort by creation time, which
// keeps the archive listing stable even when clocks collide. A rule string
// that does not parse is stored as written.
func NewSession(config search.Config) Session {
	ruleString := config.RuleString()
	if r, err := rule.Parse(ruleString); err == nil {
		ruleString = r.String()
	}
	return Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Rule:      ruleString,
		Config:    config,
		Status:    search.Initial,
		CreatedAt: time.Now().UTC(),
	}
}
