// Package store provides a SQLite-backed archive of searches and the
// patterns they found.
//
// The archive holds two tables:
//   - Sessions: one row per search, with its configuration as JSON
//   - Solutions: the found patterns, ordered by discovery
//
// Every found pattern is recorded with its generation-0 RLE, its
// population, and the number of search steps spent when it was found, so
// a long enumeration can be resumed and its results inspected later.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Timestamps are stored as RFC 3339 text in UTC so rows compare and sort
// the same on every platform.
package store
