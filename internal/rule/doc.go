// Package rule parses rule strings for two-state outer-totalistic cellular
// automata and compiles them into implication lookup tables.
//
// A rule is described either in Life-like notation ("B3/S23", optionally
// suffixed with "V" for the von Neumann neighborhood) or in higher-range
// notation ("R3,C2,S2,B3,N+"). The parsed Rule is an immutable value; the
// compiled Table answers, for any neighborhood descriptor, which cell states
// are forced and whether the descriptor is contradictory.
//
// The table is precomputed once per search. Lookups are a single slice index,
// so the search loop never re-derives transition logic.
package rule
