// Package algebra implements the three-layered algebraic value model from
// spec.md §3: field scalars (package field) compose into linear
// combinations (LC), which compose into quadratic equations (QEQ), unified
// behind the tagged-union Value type with closed operator semantics.
package algebra

// SignalID identifies a signal within a circuit. Id 0 is reserved for the
// constant "one" signal that every LC/QEQ implicitly may reference.
type SignalID int

// SignalOne is the reserved id of the always-one constant signal, matching
// SIGNAL_ONE in the algebra layer this package is grounded on.
const SignalOne SignalID = 0
