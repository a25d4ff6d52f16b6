// Package symmetry models the dihedral group D8 acting on rectangular
// patterns: the 8 rotations and reflections, and the 10 subgroups that a
// pattern can be required to be invariant under.
//
// Transformations compose and invert as group elements and know which world
// shapes they are compatible with. Symmetries carry the subgroup partial
// order and the condition a per-period translation must satisfy.
package symmetry
