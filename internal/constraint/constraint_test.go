package constraint

import (
	"testing"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/field"
)

func TestPushAndAt(t *testing.T) {
	s := NewStore()
	q := algebra.QEQFromFS(field.One())
	idx := s.Push(q, "test")
	if idx != 0 || s.Len() != 1 {
		t.Fatalf("expected idx 0 len 1, got idx=%d len=%d", idx, s.Len())
	}
	if got := s.At(0); got.Tag != "test" {
		t.Fatalf("expected tag test, got %s", got.Tag)
	}
}

func TestReplace(t *testing.T) {
	s := NewStore()
	s.Push(algebra.QEQFromFS(field.One()), "")
	s.Replace(0, algebra.QEQFromFS(field.FromUint64(2)))
	got := s.At(0).QEQ
	c, _ := got.C.Get(algebra.SignalOne)
	if c.String() != "2" {
		t.Fatalf("expected 2, got %s", c)
	}
}
