// Package evaluator implements the dual/triple-mode AST-walking core
// described in spec.md §4: the same template/function body is evaluated
// three times against a shared signal and constraint store — once to
// collect declarations, once to generate R1CS constraints and once to
// produce a concrete witness — dispatching through the visitor interfaces
// package ast defines.
package evaluator

import (
	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/constraint"
	"github.com/za-lang/zkcc/internal/scope"
	"github.com/za-lang/zkcc/internal/signal"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// Mode selects which of the three evaluation passes is running.
type Mode int

const (
	// Collect gathers top-level function/template declarations only.
	Collect Mode = iota
	// GenConstraints walks every reachable template body, expanding
	// components and emitting R1CS constraints.
	GenConstraints
	// GenWitness re-walks the same structure with host-supplied inputs,
	// computing and checking concrete field values.
	GenWitness
)

func (m Mode) String() string {
	switch m {
	case Collect:
		return "collect"
	case GenConstraints:
		return "gen-constraints"
	case GenWitness:
		return "gen-witness"
	default:
		return "unknown"
	}
}

// SkipEval reports whether a node tagged with attrs should be skipped in
// this mode: witness-only ("w"-tagged) statements are not walked while
// generating constraints, since they exist purely to compute auxiliary
// values during GenWitness, and Collect walks no statement at all.
func (m Mode) SkipEval(attrs ast.Attributes) bool {
	return m == Collect || (m == GenConstraints && attrs.Has("w"))
}

// Loader resolves an include path to its parsed body and raw source bytes.
// Lexing/parsing themselves are out of this module's scope (spec.md §1);
// the evaluator only needs the already-parsed tree plus the bytes it hashes
// for the include-once guard.
type Loader interface {
	Load(path string) (*ast.File, []byte, error)
}

// Evaluator holds every piece of state spec.md §4/§7 say a single
// compilation pass threads through the whole AST walk: the current
// position (file/component/function), the shared signal and constraint
// stores, the scope arena, the include-once guard and the first captured
// error context.
type Evaluator struct {
	Scopes   *scope.Arena
	curScope scope.ID

	CurrentFile      string
	CurrentComponent string
	CurrentFunction  string // "" means not inside a function call

	curDir string // directory new includes resolve relative to

	Signals     *signal.Store
	Constraints *constraint.Store

	processedFiles map[string]bool // blake2b-512 hex digest -> seen

	Mode Mode

	loader Loader

	// DeferredSignalValues seeds a signal with a witness value the moment
	// it is declared, bypassing the normal <-- / <== wiring — the host
	// input mechanism spec.md §4.3 describes.
	DeferredSignalValues map[string]algebra.Value

	LastError *zkerr.Context
	Debug     bool
}

// New returns an Evaluator for a single pass in the given mode. signals and
// constraints are shared across the Collect/GenConstraints/GenWitness
// passes of one compilation, so callers construct them once and pass the
// same stores into each New call.
func New(mode Mode, loader Loader, signals *signal.Store, constraints *constraint.Store) *Evaluator {
	return &Evaluator{
		Scopes:               scope.NewArena(),
		Signals:              signals,
		Constraints:          constraints,
		processedFiles:       make(map[string]bool),
		Mode:                 mode,
		loader:               loader,
		DeferredSignalValues: make(map[string]algebra.Value),
	}
}

// SetDeferredValue registers a host-supplied witness value for a signal
// full name, consumed the moment that signal is declared.
func (ev *Evaluator) SetDeferredValue(fullName string, v algebra.Value) {
	ev.DeferredSignalValues[fullName] = v
}

// EvalFile is the main entry point: it opens filename (resolved under dir)
// through the Loader and walks it, returning the root scope for later
// lookups (e.g. instantiating "main").
func (ev *Evaluator) EvalFile(dir, filename string) (scope.ID, error) {
	ev.curDir = dir
	root := ev.Scopes.Root(filename)
	ev.curScope = root
	if err := ev.evalInclude(ast.Meta{}, filename); err != nil {
		return root, err
	}
	return root, nil
}

// EvalASTs walks an already-parsed program in two passes, matching the
// teacher's registration-then-execution split: every function/template
// definition is registered first, so a top-level declaration may reference
// a template defined later in the same list.
func (ev *Evaluator) EvalASTs(elements []ast.BodyElement) (scope.ID, error) {
	root := ev.Scopes.Root("")
	ev.curScope = root

	for _, be := range elements {
		var err error
		switch b := be.(type) {
		case *ast.FunctionDef:
			err = ev.evalFunctionDef(b.M, b.Name, b.Params, b.Body)
		case *ast.TemplateDef:
			err = ev.evalTemplateDef(b.M, b.Name, b.Params, b.Body)
		}
		if err != nil {
			return root, err
		}
	}
	for _, be := range elements {
		if td, ok := be.(*ast.TopLevelDeclaration); ok {
			if err := ev.evalStmt(td.Decl); err != nil {
				return root, err
			}
		}
	}
	return root, nil
}

// EvalTemplate runs a named top-level template directly in a fresh
// start-boundary scope rooted at root, the entry point package testdiscovery
// uses to drive a "test"-tagged template end to end. Unlike a nested
// component instantiation, a directly-run template has no owner to defer
// expansion for, so its signals are registered and its body walked in one
// step regardless of mode — the same shortcut doComponentInst takes for
// "main" in GenConstraints.
func (ev *Evaluator) EvalTemplate(root scope.ID, name string) error {
	v, ok := ev.Scopes.Get(root, name)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", name)
	}
	tmpl, ok := v.(scope.TemplateValue)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", name)
	}

	callScope := ev.Scopes.New(true, root, tmpl.Path)
	prevScope, prevFile, prevComponent := ev.curScope, ev.CurrentFile, ev.CurrentComponent
	ev.curScope = callScope
	ev.CurrentFile = tmpl.Path
	ev.CurrentComponent = name

	_, err := ev.registerSignalDecls(tmpl.Body, name)
	if err == nil {
		err = ev.evalStmt(tmpl.Body)
	}

	ev.curScope, ev.CurrentFile, ev.CurrentComponent = prevScope, prevFile, prevComponent
	return err
}

// wrap captures the error-context snapshot spec.md §7 describes the first
// time an error surfaces on the current evaluation path, then leaves every
// later wrap along the same unwind alone — first error wins.
func (ev *Evaluator) wrap(m ast.Meta, err error) error {
	if err == nil {
		return nil
	}
	if ev.LastError != nil {
		return err
	}
	ctx := &zkerr.Context{
		Scope:     ev.Scopes.Dump(ev.curScope),
		Span:      zkerr.Span{Start: m.Start, End: m.End},
		File:      ev.CurrentFile,
		Component: ev.CurrentComponent,
		Function:  ev.CurrentFunction,
	}
	ev.LastError = ctx
	return zkerr.WithContext(err, ctx)
}
