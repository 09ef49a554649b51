package optimizer

import (
	"testing"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/field"
)

func TestOptimizePassEliminatesChain(t *testing.T) {
	sin := algebra.SignalID(1)
	st := algebra.SignalID(2)
	sk := algebra.SignalID(3)
	sout := algebra.SignalID(4)

	store := constraint.NewStore()

	// t <== in * 2
	qeq1 := algebra.NewQEQ(algebra.NewLC(), algebra.NewLC(),
		algebra.LCFromSignal(st, field.One()).Add(algebra.LCFromSignal(sin, field.FromUint64(2).Neg())))

	// k * 2 <== t * 4
	qeq2 := algebra.NewQEQ(
		algebra.LCFromSignal(algebra.SignalOne, field.FromUint64(2)),
		algebra.LCFromSignal(sk, field.One()),
		algebra.LCFromSignal(st, field.FromUint64(4).Neg()))

	// out === k
	qeq3 := algebra.NewQEQ(algebra.NewLC(), algebra.NewLC(),
		algebra.LCFromSignal(sout, field.One()).Add(algebra.LCFromSignal(sk, field.One().Neg())))

	store.Push(qeq1, "")
	store.Push(qeq2, "")
	store.Push(qeq3, "")

	opt, removed := OptimizePass(store, []algebra.SignalID{sin, sout})

	if len(removed) != 2 || removed[0] != st || removed[1] != sk {
		t.Fatalf("expected removed=[%d %d], got %v", st, sk, removed)
	}
	if opt.Len() != 1 {
		t.Fatalf("expected 1 remaining constraint, got %d", opt.Len())
	}

	want := algebra.NewQEQ(algebra.NewLC(), algebra.NewLC(),
		algebra.LCFromSignal(sout, field.One()).Add(algebra.LCFromSignal(sin, field.FromUint64(4).Neg())))

	if got := opt.At(0).QEQ.String(); got != want.String() {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
