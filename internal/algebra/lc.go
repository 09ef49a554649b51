package algebra

import (
	"strconv"
	"strings"

	"github.com/za-lang/zkcc/internal/field"
)

// term is one (signal, coefficient) pair in an LC.
type term struct {
	signal SignalID
	coeff  field.FS
}

// LC is a linear combination of signals: an ordered list of (signal,
// coefficient) pairs with no zero coefficients. Every operation below
// returns a fresh LC rather than mutating its receiver, mirroring the
// teacher's preference for value types flowing through the evaluator.
type LC struct {
	terms []term
}

// NewLC returns the empty (zero) linear combination.
func NewLC() LC { return LC{} }

// LCFromSignal returns the LC `coeff*signal`.
func LCFromSignal(signal SignalID, coeff field.FS) LC {
	if coeff.IsZero() {
		return LC{}
	}
	return LC{terms: []term{{signal, coeff}}}
}

// LCFromFS lifts a field scalar into an LC over SignalOne.
func LCFromFS(fs field.FS) LC {
	return LCFromSignal(SignalOne, fs)
}

// Get returns the coefficient of signal, and whether it is present.
func (l LC) Get(signal SignalID) (field.FS, bool) {
	for _, t := range l.terms {
		if t.signal == signal {
			return t.coeff, true
		}
	}
	return field.FS{}, false
}

// Set returns a copy of l with signal's coefficient replaced by fn applied
// to the current coefficient (field.Zero() if absent). A zero result drops
// the term.
func (l LC) Set(signal SignalID, fn func(current field.FS, present bool) field.FS) LC {
	out := make([]term, len(l.terms))
	copy(out, l.terms)
	for i, t := range out {
		if t.signal == signal {
			out[i].coeff = fn(t.coeff, true)
			return LC{terms: pruneZero(out)}
		}
	}
	return LC{terms: pruneZero(append(out, term{signal, fn(field.Zero(), false)}))}
}

// Remove returns a copy of l with signal's term dropped, if present.
func (l LC) Remove(signal SignalID) LC {
	out := make([]term, 0, len(l.terms))
	for _, t := range l.terms {
		if t.signal != signal {
			out = append(out, t)
		}
	}
	return LC{terms: out}
}

// IsZero reports whether every coefficient is zero (equivalently, l has no
// terms, since terms are pruned eagerly).
func (l LC) IsZero() bool {
	for _, t := range l.terms {
		if !t.coeff.IsZero() {
			return false
		}
	}
	return true
}

// Terms returns the (signal, coefficient) pairs in insertion order. The
// returned slice must not be mutated by the caller.
func (l LC) Terms() []struct {
	Signal SignalID
	Coeff  field.FS
} {
	out := make([]struct {
		Signal SignalID
		Coeff  field.FS
	}, len(l.terms))
	for i, t := range l.terms {
		out[i] = struct {
			Signal SignalID
			Coeff  field.FS
		}{t.signal, t.coeff}
	}
	return out
}

// Neg returns -l.
func (l LC) Neg() LC {
	out := make([]term, len(l.terms))
	for i, t := range l.terms {
		out[i] = term{t.signal, t.coeff.Neg()}
	}
	return LC{terms: out}
}

// AddFS returns l+fs.
func (l LC) AddFS(fs field.FS) LC {
	out := make([]term, len(l.terms))
	copy(out, l.terms)
	found := false
	for i, t := range out {
		if t.signal == SignalOne {
			out[i].coeff = t.coeff.Add(fs)
			found = true
			break
		}
	}
	if !found {
		out = append(out, term{SignalOne, fs})
	}
	return LC{terms: pruneZero(out)}
}

// MulFS returns l*fs.
func (l LC) MulFS(fs field.FS) LC {
	if fs.IsZero() {
		return LC{}
	}
	out := make([]term, len(l.terms))
	for i, t := range l.terms {
		out[i] = term{t.signal, t.coeff.Mul(fs)}
	}
	return LC{terms: out}
}

// Add returns l+other.
func (l LC) Add(other LC) LC {
	out := make([]term, len(l.terms))
	copy(out, l.terms)
	for _, rt := range other.terms {
		merged := false
		for i, t := range out {
			if t.signal == rt.signal {
				out[i].coeff = t.coeff.Add(rt.coeff)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, rt)
		}
	}
	return LC{terms: pruneZero(out)}
}

// Mul returns l*other as a QEQ: (l)*(other)+0.
func (l LC) Mul(other LC) QEQ {
	return QEQ{A: l, B: other, C: LC{}}
}

func pruneZero(in []term) []term {
	out := in[:0]
	for _, t := range in {
		if !t.coeff.IsZero() {
			out = append(out, t)
		}
	}
	return out
}

// Format renders l as "c0name(s0)+c1name(s1)+..." (e.g. "3s1-2s2"), or "0" if empty, using
// nameFn to render a SignalID — matching the teacher's debug-formatting
// idiom of taking a naming callback rather than hardcoding signal display.
func (l LC) Format(nameFn func(SignalID) string) string {
	if len(l.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range l.terms {
		b.WriteString(t.coeff.Format(i > 0))
		b.WriteString(nameFn(t.signal))
	}
	return b.String()
}

func (l LC) String() string {
	return l.Format(func(s SignalID) string { return "s" + strconv.Itoa(int(s)) })
}
