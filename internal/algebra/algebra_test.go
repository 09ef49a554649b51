package algebra

import (
	"testing"

	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/field"
)

func fs(n uint64) field.FS { return field.FromUint64(n) }

func TestLCSetGetRemove(t *testing.T) {
	lc := NewLC()
	s1, s2 := SignalID(1), SignalID(2)

	if lc.String() != "0" {
		t.Fatalf("expected 0, got %s", lc)
	}
	if _, ok := lc.Get(s1); ok {
		t.Fatal("expected s1 absent")
	}

	lc = lc.Set(s1, func(field.FS, bool) field.FS { return fs(2) })
	if lc.String() != "2s1" {
		t.Fatalf("expected 2s1, got %s", lc)
	}
	lc = lc.Set(s1, func(field.FS, bool) field.FS { return fs(3) })
	if lc.String() != "3s1" {
		t.Fatalf("expected 3s1, got %s", lc)
	}
	lc = lc.Set(s2, func(field.FS, bool) field.FS { return fs(2) })
	if lc.String() != "3s1+2s2" {
		t.Fatalf("expected 3s1+2s2, got %s", lc)
	}

	lc = lc.Remove(s1)
	if lc.String() != "2s2" {
		t.Fatalf("expected 2s2, got %s", lc)
	}
	lc = lc.Remove(s2)
	if lc.String() != "0" {
		t.Fatalf("expected 0, got %s", lc)
	}
}

func TestLCFSAddMul(t *testing.T) {
	one := field.One()
	two := one.Add(one)
	s1 := SignalID(1)

	lc1s1 := LCFromSignal(s1, field.One())
	got := lc1s1.AddFS(one).AddFS(one)
	if got.String() != "1s1+2s0" {
		t.Fatalf("expected 1s1+2s0, got %s", got)
	}

	lc1s14one := lc1s1.AddFS(two)
	if got := lc1s14one.MulFS(two); got.String() != "2s1+4s0" {
		t.Fatalf("expected 2s1+4s0, got %s", got)
	}
}

func TestLCNeg(t *testing.T) {
	s1, s2 := SignalID(1), SignalID(2)
	lc1s1 := LCFromSignal(s1, field.One())
	lc1s2 := LCFromSignal(s2, field.One())

	negPlus := lc1s1.Neg().Add(lc1s2)
	if negPlus.String() != "-1s1+1s2" {
		t.Fatalf("expected -1s1+1s2, got %s", negPlus)
	}
	back := negPlus.Neg()
	if back.String() != "1s1-1s2" {
		t.Fatalf("expected 1s1-1s2, got %s", back)
	}
	if zero := negPlus.Add(back); zero.String() != "0" {
		t.Fatalf("expected 0, got %s", zero)
	}
}

func TestLCMulProducesQEQ(t *testing.T) {
	s1, s2 := SignalID(1), SignalID(2)
	lc2s11s2 := LCFromSignal(s1, field.One()).Add(LCFromSignal(s1, field.One())).Add(LCFromSignal(s2, field.One()))
	q := lc2s11s2.Mul(LCFromSignal(s2, field.One()))
	if got := q.String(); got != "[2s1+1s2]*[1s2]+[ ]" {
		t.Fatalf("expected [2s1+1s2]*[1s2]+[ ], got %s", got)
	}
}

func TestQEQFormat(t *testing.T) {
	s1, s2 := SignalID(1), SignalID(2)
	lc1s1 := LCFromSignal(s1, field.One())
	lc1s2 := LCFromSignal(s2, field.One())
	q := lc1s1.Mul(lc1s2).AddFS(field.One())
	if got := q.String(); got != "[1s1]*[1s2]+[1s0]" {
		t.Fatalf("expected [1s1]*[1s2]+[1s0], got %s", got)
	}
}

func TestEvalInfixAddAcrossKinds(t *testing.T) {
	vFS := FromFS(fs(3))
	vLC := FromSignal(SignalID(1))

	got, err := EvalInfix(vFS, ast.OpAdd, vLC)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindLC {
		t.Fatalf("expected LC result, got kind %d", got.Kind())
	}
}

func TestEvalInfixMulLCLCProducesQEQ(t *testing.T) {
	a := FromSignal(SignalID(1))
	b := FromSignal(SignalID(2))
	got, err := EvalInfix(a, ast.OpMul, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != KindQEQ {
		t.Fatalf("expected QEQ result, got kind %d", got.Kind())
	}
}

func TestEvalInfixDivRequiresFS(t *testing.T) {
	a := FromSignal(SignalID(1))
	b := FromFS(fs(2))
	if _, err := EvalInfix(a, ast.OpDiv, b); err == nil {
		t.Fatal("expected algebra error dividing an LC")
	}
}

func TestEvalPrefixNegate(t *testing.T) {
	got, err := EvalPrefix(ast.OpSub, FromFS(field.One()))
	if err != nil {
		t.Fatal(err)
	}
	v, ok := got.AsFS()
	if !ok || v.String() != "-1" {
		t.Fatalf("expected -1, got %v", got)
	}
}

func TestTryToSignal(t *testing.T) {
	v := FromSignal(SignalID(5))
	id, ok := v.TryToSignal()
	if !ok || id != 5 {
		t.Fatalf("expected signal 5, got %v %v", id, ok)
	}
	if _, ok := FromFS(fs(5)).TryToSignal(); ok {
		t.Fatal("expected FS value to not be a signal")
	}
}
