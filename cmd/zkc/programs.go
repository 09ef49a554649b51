package main

import (
	"math/big"
	"sort"

	"github.com/za-lang/zkcc/internal/ast"
)

// programs is the CLI's built-in circuit registry. Lexing and parsing the
// source language are explicitly out of scope for this module (spec.md
// §1's non-goals), so zkc operates on programs constructed directly as AST
// literals — the same construction idiom internal/evaluator's own tests
// use — rather than inventing a source-text frontend. A real deployment
// wires a Loader backed by whatever upstream parser produces this AST
// contract; this registry exists to give the CLI something concrete to
// compile, witness and test end to end.
var programs = map[string]func() []ast.BodyElement{
	"multiplier": multiplierProgram,
	"lazychain":  lazyChainProgram,
	"selftest":   selfTestProgram,
}

// programNames returns the registry's keys, sorted for stable CLI output.
func programNames() []string {
	names := make([]string, 0, len(programs))
	for k := range programs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// multiplierProgram is spec.md §8 Scenario 1:
//
//	template Multiplier() {
//	    signal output c;
//	    signal private input a;
//	    signal private input b;
//	    c <== a * b;
//	}
//	component main = Multiplier();
func multiplierProgram() []ast.BodyElement {
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
	tmpl := &ast.TemplateDef{Name: "Multiplier", Body: body}
	main := &ast.TopLevelDeclaration{Decl: &ast.Declaration{
		Kind: ast.DeclComponent, Name: "main", ComponentOf: &ast.FunctionCall{Name: "Multiplier"},
	}}
	return []ast.BodyElement{tmpl, main}
}

// lazyChainProgram is spec.md §8 Scenario 4: a sub-component whose body
// cannot expand until its one input signal is wired from outside.
//
//	template Checks2() { signal input a; a === 2; }
//	template Root() {
//	    component c1 = Checks2();
//	    c1.a <-- 2;
//	}
//	component main = Root();
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

// selfTestProgram has no "component main": it exists purely to carry
// test-tagged templates package testdiscovery drives directly, for the
// `zkc test` subcommand.
//
//	#[test]
//	template MultipliesCorrectly() {
//	    signal private input a;
//	    signal private input b;
//	    signal output c;
//	    a <-- 7;
//	    b <-- 3;
//	    c <== a * b;
//	}
func selfTestProgram() []ast.BodyElement {
	body := &ast.Block{Stmts: []ast.Stmt{
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "a"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigPrivateInput, Name: "b"},
		&ast.Declaration{Kind: ast.DeclSignal, SigKind: ast.SigOutput, Name: "c"},
		&ast.SignalLeft{Target: &ast.Variable{Name: "a"}, Value: &ast.Number{Value: big.NewInt(7)}},
		&ast.SignalLeft{Target: &ast.Variable{Name: "b"}, Value: &ast.Number{Value: big.NewInt(3)}},
		&ast.SignalLeft{
			Target:    &ast.Variable{Name: "c"},
			Value:     &ast.InfixOp{Lhe: &ast.Variable{Name: "a"}, Op: ast.OpMul, Rhe: &ast.Variable{Name: "b"}},
			Constrain: true,
		},
	}}
	tmpl := &ast.TemplateDef{
		M:    ast.Meta{Attrs: ast.Attributes{"test": {}}},
		Name: "MultipliesCorrectly",
		Body: body,
	}
	return []ast.BodyElement{tmpl}
}
