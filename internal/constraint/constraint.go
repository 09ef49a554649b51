// Package constraint implements the append-only store of R1CS constraints
// a circuit accumulates during GenConstraints mode.
package constraint

import "github.com/za-lang/zkcc/internal/algebra"

// Constraint is one R1CS row, A*B+C=0, with an optional debug tag
// recording the source construct that produced it (useful when the
// optimizer or a failed witness check needs to report which statement a
// constraint came from).
type Constraint struct {
	QEQ algebra.QEQ
	Tag string
}

// Store is an append-only, index-addressed list of constraints.
type Store struct {
	items []Constraint
}

// NewStore returns an empty constraint store.
func NewStore() *Store { return &Store{} }

// Push appends a constraint and returns its index.
func (s *Store) Push(q algebra.QEQ, tag string) int {
	s.items = append(s.items, Constraint{QEQ: q, Tag: tag})
	return len(s.items) - 1
}

// Len returns the number of constraints in the store.
func (s *Store) Len() int { return len(s.items) }

// At returns the constraint at index i.
func (s *Store) At(i int) Constraint { return s.items[i] }

// All returns every constraint, in insertion order. The returned slice must
// not be mutated by the caller.
func (s *Store) All() []Constraint { return s.items }

// Replace overwrites the QEQ of the constraint at index i, keeping its tag.
// The optimizer does not use it; it builds a fresh Store instead.
func (s *Store) Replace(i int, q algebra.QEQ) {
	s.items[i].QEQ = q
}
