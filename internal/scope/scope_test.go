package scope

import (
	"testing"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/field"
)

func TestInsertGetContains(t *testing.T) {
	a := NewArena()
	root := a.Root("main")

	if a.Contains(root, "x") {
		t.Fatal("expected x not present")
	}
	if err := a.Insert(root, "x", AlgebraValue{algebra.FromFS(field.FromUint64(1))}); err != nil {
		t.Fatal(err)
	}
	if !a.Contains(root, "x") {
		t.Fatal("expected x present")
	}
	v, ok := a.Get(root, "x")
	if !ok {
		t.Fatal("expected to find x")
	}
	av, ok := v.(AlgebraValue)
	if !ok {
		t.Fatalf("expected AlgebraValue, got %T", v)
	}
	fs, _ := av.V.AsFS()
	if fs.String() != "1" {
		t.Fatalf("expected 1, got %s", fs)
	}
}

func TestInsertDuplicateFails(t *testing.T) {
	a := NewArena()
	root := a.Root("main")
	if err := a.Insert(root, "x", BoolValue{true}); err != nil {
		t.Fatal(err)
	}
	if err := a.Insert(root, "x", BoolValue{false}); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}

func TestChildSeesParentUnlessStartBoundary(t *testing.T) {
	a := NewArena()
	root := a.Root("main")
	a.Insert(root, "outer", BoolValue{true})

	block := a.New(false, root, "block")
	if !a.Contains(block, "outer") {
		t.Fatal("expected non-boundary child scope to see parent's bindings")
	}

	fnCall := a.New(true, root, "fn")
	if a.Contains(fnCall, "outer") {
		t.Fatal("expected start-boundary scope to not see parent's bindings")
	}
}

func TestUpdateWalksToDefiningFrame(t *testing.T) {
	a := NewArena()
	root := a.Root("main")
	a.Insert(root, "x", BoolValue{true})
	block := a.New(false, root, "block")

	if err := a.Update(block, "x", BoolValue{false}); err != nil {
		t.Fatal(err)
	}
	v, _ := a.Get(root, "x")
	if v.(BoolValue).V != false {
		t.Fatal("expected update from child scope to reach the defining frame")
	}
}

func TestUpdateUndeclaredFails(t *testing.T) {
	a := NewArena()
	root := a.Root("main")
	if err := a.Update(root, "missing", BoolValue{true}); err == nil {
		t.Fatal("expected update of undeclared variable to fail")
	}
}

func TestReturnValuePropagatesToBoundary(t *testing.T) {
	a := NewArena()
	root := a.Root("main")
	fnCall := a.New(true, root, "fn")
	inner := a.New(false, fnCall, "fn-body")

	a.SetReturn(inner, AlgebraReturn{algebra.FromFS(field.FromUint64(7))})
	if !a.HasReturn(fnCall) {
		t.Fatal("expected return value to be visible at the boundary frame")
	}
	v, ok := a.TakeReturn(inner)
	if !ok {
		t.Fatal("expected to take return value from inner scope")
	}
	ar := v.(AlgebraReturn)
	fs, _ := ar.V.AsFS()
	if fs.String() != "7" {
		t.Fatalf("expected 7, got %s", fs)
	}
	if a.HasReturn(fnCall) {
		t.Fatal("expected return value to be consumed")
	}
}

func TestListNewGetSet(t *testing.T) {
	l := NewList(2, 3)
	v, err := l.Get([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	fs, ok := v.AsValue()
	if !ok {
		t.Fatal("expected leaf value")
	}
	zero, _ := fs.AsFS()
	if !zero.IsZero() {
		t.Fatalf("expected default-zero leaf, got %s", zero)
	}

	updated, err := l.Set(algebra.FromFS(field.FromUint64(9)), []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	got, err := updated.Get([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	gv, _ := got.AsValue()
	gfs, _ := gv.AsFS()
	if gfs.String() != "9" {
		t.Fatalf("expected 9, got %s", gfs)
	}

	orig, _ := l.Get([]int{1, 2})
	ofs, _ := orig.AsValue()
	ov, _ := ofs.AsFS()
	if !ov.IsZero() {
		t.Fatal("expected original list to be unmodified by Set")
	}
}

func TestListOutOfRangeFails(t *testing.T) {
	l := NewList(2)
	if _, err := l.Get([]int{5}); err == nil {
		t.Fatal("expected out-of-range index to fail")
	}
}
