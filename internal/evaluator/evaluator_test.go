package evaluator

import (
	"math/big"
	"testing"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/field"
	"github.com/za-lang/zkcc/internal/signal"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// multiplicationProgram builds the AST for:
//
//	template T() {
//	    signal output c;
//	    signal private input a;
//	    signal private input b;
//	    c <== a * b;
//	}
//	component main = T();
func multiplicationProgram() []ast.BodyElement {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigOutput, Name: "c"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "a"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "b"},
		&ast.SignalLeft{
			Target:    &ast.Variable{Name: "c"},
			Value:     &ast.InfixOp{Lhe: &ast.Variable{Name: "a"}, Op: ast.OpMul, Rhe: &ast.Variable{Name: "b"}},
			Constrain: true,
		},
	}}
	tmpl := &ast.TemplateDef{Name: "T", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind:        ast.DeclComponent,
		Name:        "main",
		ComponentOf: &ast.FunctionCall{Name: "T"},
	}}
	return []ast.BodyElement{tmpl, main}
}

func TestMultiplicationCircuitGeneratesOneConstraint(t *testing.T) {
	signals := signal.NewStore()
	constraints := constraint.NewStore()

	ev := New(GenConstraints, nil, signals, constraints)
	if _, err := ev.EvalASTs(multiplicationProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := constraints.Len(), 1; got != want {
		t.Fatalf("constraint count = %d, want %d", got, want)
	}
	for _, name := range []string{"main.c", "main.a", "main.b"} {
		if signals.GetByName(name) == nil {
			t.Fatalf("expected signal %q to be registered", name)
		}
	}
}

func TestMultiplicationCircuitWitnessSatisfies(t *testing.T) {
	signals := signal.NewStore()
	constraints := constraint.NewStore()

	if _, err := New(GenConstraints, nil, signals, constraints).EvalASTs(multiplicationProgram()); err != nil {
		t.Fatalf("constraint pass: %v", err)
	}

	ev := New(GenWitness, nil, signals, constraints)
	ev.SetDeferredValue("main.a", algebra.FromFS(field.FromUint64(7)))
	ev.SetDeferredValue("main.b", algebra.FromFS(field.FromUint64(3)))
	if _, err := ev.EvalASTs(multiplicationProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := signals.GetByName("main.c")
	if c == nil || !c.HasValue {
		t.Fatal("main.c was not assigned a witness value")
	}
	fs, ok := c.Value.AsFS()
	if !ok || !fs.Eq(field.FromUint64(21)) {
		t.Fatalf("main.c = %v, want 21", fs)
	}
}

// claimedProductProgram builds a circuit where the product is an
// independently host-supplied signal checked against the real product,
// rather than one the circuit itself computes — the only way a `===` can
// actually fail in GenWitness mode, since a `<==`-computed signal is
// rewritten to the correct value on every pass before its check runs.
//
//	template T4() {
//	    signal private input a;
//	    signal private input b;
//	    signal private input claimedProduct;
//	    claimedProduct === a * b;
//	}
//	component main = T4();
func claimedProductProgram() []ast.BodyElement {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "a"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "b"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "claimedProduct"},
		&ast.SignalEq{
			Lhe: &ast.Variable{Name: "claimedProduct"},
			Rhe: &ast.InfixOp{Lhe: &ast.Variable{Name: "a"}, Op: ast.OpMul, Rhe: &ast.Variable{Name: "b"}},
		},
	}}
	tmpl := &ast.TemplateDef{Name: "T4", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind:        ast.DeclComponent,
		Name:        "main",
		ComponentOf: &ast.FunctionCall{Name: "T4"},
	}}
	return []ast.BodyElement{tmpl, main}
}

func TestWitnessRejectsWrongClaimedProduct(t *testing.T) {
	signals := signal.NewStore()
	constraints := constraint.NewStore()

	if _, err := New(GenConstraints, nil, signals, constraints).EvalASTs(claimedProductProgram()); err != nil {
		t.Fatalf("constraint pass: %v", err)
	}

	ev := New(GenWitness, nil, signals, constraints)
	ev.SetDeferredValue("main.a", algebra.FromFS(field.FromUint64(7)))
	ev.SetDeferredValue("main.b", algebra.FromFS(field.FromUint64(3)))
	ev.SetDeferredValue("main.claimedProduct", algebra.FromFS(field.FromUint64(99)))

	_, err := ev.EvalASTs(claimedProductProgram())
	if !zkerr.Is(err, zkerr.CannotCheckConstraint) {
		t.Fatalf("expected CannotCheckConstraint, got %v", err)
	}
}

func TestSignalEqBetweenConstantsRejectedDuringConstraintGeneration(t *testing.T) {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.SignalEq{
			Lhe: &ast.Number{Value: big.NewInt(3)},
			Rhe: &ast.Number{Value: big.NewInt(3)},
		},
	}}
	tmpl := &ast.TemplateDef{Name: "T2", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind:        ast.DeclComponent,
		Name:        "main",
		ComponentOf: &ast.FunctionCall{Name: "T2"},
	}}

	signals := signal.NewStore()
	constraints := constraint.NewStore()
	ev := New(GenConstraints, nil, signals, constraints)
	_, err := ev.EvalASTs([]ast.BodyElement{tmpl, main})
	if !zkerr.Is(err, zkerr.CannotGenerateConstraint) {
		t.Fatalf("expected CannotGenerateConstraint, got %v", err)
	}
}

// lazyChainProgram builds spec.md §8 Scenario 4:
//
//	template Checks2() { signal input a; a === 2; }
//	template Root() {
//	    component c1 = Checks2();
//	    c1.a <-- 2;
//	}
//	component main = Root();
//
// c1's body cannot expand at phase 1, since its one input signal is still
// pending; expansion only fires once c1.a is wired from Root's body.
func lazyChainProgram() []ast.BodyElement {
	checks2Body := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPublicInput, Name: "a"},
		&ast.SignalEq{Lhe: &ast.Variable{Name: "a"}, Rhe: &ast.Number{Value: big.NewInt(2)}},
	}}
	checks2 := &ast.TemplateDef{Name: "Checks2", Body: checks2Body}

	rootBody := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclComponent, Name: "c1", ComponentOf: &ast.FunctionCall{Name: "Checks2"}},
		&ast.SignalLeft{
			Target: &ast.Variable{Name: "c1", Sels: []ast.Selector{&ast.PinSelector{Name: "a"}}},
			Value:  &ast.Number{Value: big.NewInt(2)},
		},
	}}
	root := &ast.TemplateDef{Name: "Root", Body: rootBody}

	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind: ast.DeclComponent, Name: "main", ComponentOf: &ast.FunctionCall{Name: "Root"},
	}}
	return []ast.BodyElement{checks2, root, main}
}

func TestLazySubComponentExpansionFiresOnceInputWired(t *testing.T) {
	signals := signal.NewStore()
	constraints := constraint.NewStore()

	if _, err := New(GenConstraints, nil, signals, constraints).EvalASTs(lazyChainProgram()); err != nil {
		t.Fatalf("constraint pass: %v", err)
	}
	// Checks2's body only expands once c1.a is wired, so exactly one
	// constraint (from "a === 2" inside c1) is emitted — never zero (the
	// body failed to expand) and never more than one (the body expanded
	// twice).
	if got, want := constraints.Len(), 1; got != want {
		t.Fatalf("constraint count = %d, want %d", got, want)
	}
	if signals.GetByName("main.c1.a") == nil {
		t.Fatal("expected main.c1.a to be registered when c1 was instantiated")
	}

	ev := New(GenWitness, nil, signals, constraints)
	if _, err := ev.EvalASTs(lazyChainProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sig := signals.GetByName("main.c1.a")
	if sig == nil || !sig.HasValue {
		t.Fatal("main.c1.a was not assigned a witness value")
	}
	fs, ok := sig.Value.AsFS()
	if !ok || !fs.Eq(field.FromUint64(2)) {
		t.Fatalf("main.c1.a = %v, want 2", fs)
	}
}

// orderingProgram builds spec.md §8 Scenario 5: declarations interleaved
// as input, private input, internal, output, private input, internal,
// input.
func orderingProgram() []ast.BodyElement {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPublicInput, Name: "s1"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "s2"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigInternal, Name: "s3"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigOutput, Name: "s4"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "s5"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigInternal, Name: "s6"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPublicInput, Name: "s7"},
	}}
	tmpl := &ast.TemplateDef{Name: "Ordered", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind: ast.DeclComponent, Name: "main", ComponentOf: &ast.FunctionCall{Name: "Ordered"},
	}}
	return []ast.BodyElement{tmpl, main}
}

func TestSignalIdOrderingIsOutputThenPublicThenPrivateThenInternal(t *testing.T) {
	signals := signal.NewStore()
	constraints := constraint.NewStore()

	ev := New(GenConstraints, nil, signals, constraints)
	if _, err := ev.EvalASTs(orderingProgram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// id 0 is "one"; ids 1..7 must follow output, then public inputs (in
	// declaration order), then private inputs (in declaration order), then
	// internal signals (in declaration order).
	want := []string{
		"main.s4",            // output
		"main.s1", "main.s7", // public inputs
		"main.s2", "main.s5", // private inputs
		"main.s3", "main.s6", // internal
	}
	for i, name := range want {
		sig := signals.GetByName(name)
		if sig == nil {
			t.Fatalf("expected signal %q to be registered", name)
		}
		if int(sig.ID) != i+1 {
			t.Fatalf("signal %q has id %d, want %d", name, sig.ID, i+1)
		}
	}
}

func TestUndeclaredSignalReferenceFails(t *testing.T) {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.SignalLeft{
			Target:    &ast.Variable{Name: "ghost"},
			Value:     &ast.Number{Value: big.NewInt(3)},
			Constrain: false,
		},
	}}
	tmpl := &ast.TemplateDef{Name: "T3", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind:        ast.DeclComponent,
		Name:        "main",
		ComponentOf: &ast.FunctionCall{Name: "T3"},
	}}

	signals := signal.NewStore()
	constraints := constraint.NewStore()
	ev := New(GenConstraints, nil, signals, constraints)
	_, err := ev.EvalASTs([]ast.BodyElement{tmpl, main})
	if !zkerr.Is(err, zkerr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
