// Package search implements the backtracking pattern search.
//
// A World is a space-time arena of cells wired to their neighbors,
// predecessors, successors, and symmetry peers. The searcher repeatedly picks
// an undetermined cell, assigns it a tentative state, and propagates the
// consequences through the rule's implication table, undoing decisions
// chronologically when a contradiction is reached. Every assignment is
// recorded on a single stack that doubles as the propagation queue and the
// undo log.
package search
