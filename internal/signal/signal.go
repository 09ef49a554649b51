// Package signal implements the signal registry: every named wire in a
// circuit (internal, public input, private input or output) together with
// the bidirectional id/name lookup the evaluator and the R1CS producer
// both rely on.
package signal

import (
	"fmt"
	"strings"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/field"
)

// Kind classifies a signal. The canonical id ordering a completed circuit
// exposes is Output, PublicInput, PrivateInput, Internal (see DESIGN.md,
// Open Question 1) — Kind's own numeric values are just dispatch tags, not
// that ordering.
type Kind int

const (
	Internal Kind = iota
	PublicInput
	PrivateInput
	Output
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case PublicInput:
		return "public-input"
	case PrivateInput:
		return "private-input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Signal is one named wire: its id, kind, fully dotted name (e.g.
// "main.sub.x"), and its value once the witness-generation pass has
// computed one.
type Signal struct {
	ID       algebra.SignalID
	K        Kind
	FullName string
	Value    algebra.Value
	HasValue bool
}

// IsMainPublicInput reports whether s is a top-level (one dot deep) output
// or public input of the main component — the signals a verifier sees.
func (s Signal) IsMainPublicInput() bool {
	depth := strings.Count(s.FullName, ".")
	return depth == 1 && (s.K == Output || s.K == PublicInput)
}

// IsMainInput reports whether s is a top-level output, public input or
// private input of the main component.
func (s Signal) IsMainInput() bool {
	depth := strings.Count(s.FullName, ".")
	return depth == 1 && (s.K == Output || s.K == PublicInput || s.K == PrivateInput)
}

// Store is the bidirectional id<->name signal registry. Id 0 is always
// "one", a PublicInput signal with no owning component, matching
// algebra.SignalOne.
type Store struct {
	byID   []*Signal
	byName map[string]algebra.SignalID
}

// NewStore returns a Store pre-populated with the constant "one" signal.
func NewStore() *Store {
	s := &Store{byName: make(map[string]algebra.SignalID)}
	s.Insert("one", PublicInput, algebra.Value{})
	return s
}

// Len returns the number of signals registered, including "one".
func (s *Store) Len() int { return len(s.byID) }

// GetByID returns the signal with the given id, or nil if out of range.
func (s *Store) GetByID(id algebra.SignalID) *Signal {
	if int(id) < 0 || int(id) >= len(s.byID) {
		return nil
	}
	return s.byID[id]
}

// GetByName returns the signal with the given fully dotted name, or nil.
func (s *Store) GetByName(fullName string) *Signal {
	id, ok := s.byName[fullName]
	if !ok {
		return nil
	}
	return s.byID[id]
}

// Insert registers a new signal and returns its freshly allocated id.
// initial, if non-zero-valued, seeds the signal's value immediately; the
// constant "one" signal is always seeded with 1.
func (s *Store) Insert(fullName string, k Kind, initial algebra.Value) algebra.SignalID {
	id := algebra.SignalID(len(s.byID))
	sig := &Signal{ID: id, K: k, FullName: fullName}
	if fs, ok := initial.AsFS(); !ok || !fs.IsZero() {
		sig.Value = initial
		sig.HasValue = true
	}
	if k == PublicInput && fullName == "one" {
		sig.Value = algebra.FromFS(field.One())
		sig.HasValue = true
	}
	s.byID = append(s.byID, sig)
	s.byName[fullName] = id
	return id
}

// Update sets the value of an already-registered signal, the
// witness-generation pass's write path.
func (s *Store) Update(id algebra.SignalID, value algebra.Value) {
	sig := s.byID[id]
	sig.Value = value
	sig.HasValue = true
}

// MainPublicInputNames returns the full names of every top-level public
// input or output, in id order, skipping "one".
func (s *Store) MainPublicInputNames() []string {
	var out []string
	for i := 1; i < len(s.byID); i++ {
		if s.byID[i].IsMainPublicInput() {
			out = append(out, s.byID[i].FullName)
		}
	}
	return out
}

// MainInputIDs returns the ids of every top-level output, public input or
// private input, in id order, skipping "one".
func (s *Store) MainInputIDs() []algebra.SignalID {
	var out []algebra.SignalID
	for i := 1; i < len(s.byID); i++ {
		if s.byID[i].IsMainInput() {
			out = append(out, algebra.SignalID(i))
		}
	}
	return out
}

// Format renders an algebraic value using this store's signal names rather
// than bare "s<id>" placeholders.
func (s *Store) Format(v algebra.Value) string {
	name := func(id algebra.SignalID) string {
		if sig := s.GetByID(id); sig != nil {
			return sig.FullName
		}
		return "unknown"
	}
	switch v.Kind() {
	case algebra.KindFS:
		fs, _ := v.AsFS()
		return fs.String()
	case algebra.KindLC:
		lc, _ := v.AsLC()
		return lc.Format(name)
	default:
		qeq, _ := v.AsQEQ()
		return qeq.Format(name)
	}
}

// String renders the signal at id as "name:kind:value".
func (s *Store) String(id algebra.SignalID) string {
	sig := s.byID[id]
	val := "none"
	if sig.HasValue {
		val = s.Format(sig.Value)
	}
	return fmt.Sprintf("%s:%s:%s", sig.FullName, sig.K, val)
}
