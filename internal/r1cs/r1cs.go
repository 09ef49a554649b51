// Package r1cs assembles the producer contracts spec.md §6 exposes to a
// downstream prover: the R1CS itself (signal store + constraint store +
// removed-signal list) after GenConstraints and optimization, and the
// witness-satisfaction check after GenWitness.
package r1cs

import (
	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/field"
	"github.com/za-lang/zkcc/internal/signal"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// R1CS is the producer contract downstream provers consume: the signal
// store, the (already optimized) constraint store, and the sorted list of
// signal ids the optimizer eliminated.
type R1CS struct {
	Signals     *signal.Store
	Constraints *constraint.Store
	Removed     []algebra.SignalID
}

// New packages the three pieces into a producer contract.
func New(signals *signal.Store, constraints *constraint.Store, removed []algebra.SignalID) *R1CS {
	return &R1CS{Signals: signals, Constraints: constraints, Removed: removed}
}

// Witness is an assignment of a field value to every live signal.
type Witness struct {
	Signals *signal.Store
}

// eval evaluates a linear combination against the witness, requiring every
// referenced signal to already have a value.
func (w *Witness) eval(lc algebra.LC) (field.FS, error) {
	sum := field.Zero()
	for _, t := range lc.Terms() {
		sig := w.Signals.GetByID(t.Signal)
		if sig == nil || !sig.HasValue {
			return field.FS{}, zkerr.New(zkerr.CannotCheckConstraint, "signal %d has no witness value", t.Signal)
		}
		fs, ok := sig.Value.AsFS()
		if !ok {
			return field.FS{}, zkerr.New(zkerr.CannotCheckConstraint, "signal %d's witness value is not a field scalar", t.Signal)
		}
		sum = sum.Add(fs.Mul(t.Coeff))
	}
	return sum, nil
}

// Satisfies evaluates every constraint's QEQ against w and fails at the
// first one that does not reduce to zero, per spec.md §6's
// "constraints.satisfies_with(signals) -> Result".
func (w *Witness) Satisfies(constraints *constraint.Store) error {
	for i, c := range constraints.All() {
		a, err := w.eval(c.QEQ.A)
		if err != nil {
			return err
		}
		b, err := w.eval(c.QEQ.B)
		if err != nil {
			return err
		}
		cc, err := w.eval(c.QEQ.C)
		if err != nil {
			return err
		}
		if !a.Mul(b).Add(cc).IsZero() {
			return zkerr.New(zkerr.CannotCheckConstraint, "constraint %d (%s) does not evaluate to zero", i, c.Tag)
		}
	}
	return nil
}
