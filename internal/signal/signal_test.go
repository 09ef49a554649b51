package signal

import (
	"testing"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/field"
)

func TestNewStoreSeedsOne(t *testing.T) {
	s := NewStore()
	if s.Len() != 1 {
		t.Fatalf("expected len 1, got %d", s.Len())
	}
	one := s.GetByID(algebra.SignalOne)
	if one == nil || one.FullName != "one" || one.K != PublicInput {
		t.Fatalf("unexpected one signal: %+v", one)
	}
	if !one.HasValue {
		t.Fatal("expected one to have a seeded value")
	}
}

func TestInsertAndLookup(t *testing.T) {
	s := NewStore()
	id := s.Insert("main.x", Internal, algebra.Value{})
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if got := s.GetByName("main.x"); got == nil || got.ID != id {
		t.Fatalf("GetByName failed: %+v", got)
	}
	if got := s.GetByName("nope"); got != nil {
		t.Fatal("expected nil for unknown name")
	}
}

func TestUpdate(t *testing.T) {
	s := NewStore()
	id := s.Insert("main.x", Output, algebra.Value{})
	s.Update(id, algebra.FromFS(field.FromUint64(42)))
	sig := s.GetByID(id)
	if !sig.HasValue {
		t.Fatal("expected value after update")
	}
	fs, ok := sig.Value.AsFS()
	if !ok || fs.String() != "42" {
		t.Fatalf("expected 42, got %v", sig.Value)
	}
}

func TestMainPublicInputNamesAndInputIDs(t *testing.T) {
	s := NewStore()
	s.Insert("main.out", Output, algebra.Value{})
	s.Insert("main.pub", PublicInput, algebra.Value{})
	s.Insert("main.priv", PrivateInput, algebra.Value{})
	s.Insert("main.sub.x", Internal, algebra.Value{})
	s.Insert("main.internal", Internal, algebra.Value{})

	names := s.MainPublicInputNames()
	if len(names) != 2 || names[0] != "main.out" || names[1] != "main.pub" {
		t.Fatalf("unexpected public input names: %v", names)
	}

	ids := s.MainInputIDs()
	if len(ids) != 3 {
		t.Fatalf("expected 3 main inputs, got %v", ids)
	}
}

func TestFormatUsesSignalNames(t *testing.T) {
	s := NewStore()
	id := s.Insert("main.x", Internal, algebra.Value{})
	v := algebra.FromSignal(id)
	if got := s.Format(v); got != "1main.x" {
		t.Fatalf("expected 1main.x, got %s", got)
	}
}
