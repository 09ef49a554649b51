package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/scope"
	"github.com/za-lang/zkcc/internal/signal"
	"github.com/za-lang/zkcc/internal/zkerr"
)

func signalKindFromAST(k ast.SignalKind) signal.Kind {
	switch k {
	case ast.SigPublicInput:
		return signal.PublicInput
	case ast.SigPrivateInput:
		return signal.PrivateInput
	case ast.SigOutput:
		return signal.Output
	default:
		return signal.Internal
	}
}

// evalComponentDecl reserves name as an uninstantiated component. Components
// are never arrayed in this language, so dims is accepted only to satisfy
// the shared Declaration shape and is otherwise unused.
func (ev *Evaluator) evalComponentDecl(m ast.Meta, name string, dims []ast.Expr) error {
	err := ev.Scopes.Insert(ev.curScope, name, scope.UndefComponent{})
	return ev.wrap(m, err)
}

func (ev *Evaluator) evalComponentInst(m ast.Meta, name string, call *ast.FunctionCall) error {
	err := ev.doComponentInst(m, name, call)
	return ev.wrap(m, err)
}

// doComponentInst is phase 1 of component instantiation: bind the
// template's formal parameters to the evaluated call arguments, then walk
// only the template body's top-level signal declarations — sorted
// Output, PublicInput, PrivateInput, Internal — registering each as a real
// signal and collecting its public/private input ids into PendingInputs.
// Expansion of the rest of the body (phase 2) is deferred until every
// pending input has a value, except for the top-level "main" component in
// GenConstraints mode, whose inputs are symbolic from the start.
func (ev *Evaluator) doComponentInst(m ast.Meta, name string, call *ast.FunctionCall) error {
	rootID := ev.Scopes.RootOf(ev.curScope)
	tv, ok := ev.Scopes.Get(rootID, call.Name)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", call.Name)
	}
	tmpl, ok := tv.(scope.TemplateValue)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", call.Name)
	}
	if len(tmpl.Params) != len(call.Args) {
		return zkerr.New(zkerr.InvalidParameter, "%s", call.Name)
	}

	args := make([]scope.ReturnValue, len(call.Args))
	for i, a := range call.Args {
		v, err := ev.evalExpr(a)
		if err != nil {
			return err
		}
		args[i] = v
	}

	compScope := ev.Scopes.New(true, ev.curScope, fmt.Sprintf("%s:%d", tmpl.Path, m.Start))
	for i, p := range tmpl.Params {
		if err := ev.Scopes.Insert(compScope, p, scope.FromReturnValue(args[i])); err != nil {
			return err
		}
	}

	fullName := ev.expandFullName(name)

	pending, err := ev.registerSignalDecls(tmpl.Body, fullName)
	if err != nil {
		return err
	}

	comp := scope.ComponentValue{
		Template:      call.Name,
		Path:          tmpl.Path,
		Args:          args,
		PendingInputs: pending,
		Scope:         compScope,
		FullName:      fullName,
	}

	if name == "main" && ev.Mode == GenConstraints {
		comp.PendingInputs = nil
		if err := ev.Scopes.Update(ev.curScope, name, comp); err != nil {
			return err
		}
		return ev.evalComponentExpand(m, name)
	}

	if err := ev.Scopes.Update(ev.curScope, name, comp); err != nil {
		return err
	}
	if len(comp.PendingInputs) == 0 {
		return ev.evalComponentExpand(m, name)
	}
	return nil
}

// registerSignalDecls walks body's top-level signal declarations sorted
// Output, PublicInput, PrivateInput, Internal and registers each as a real
// signal under fullName. A signal already seeded through
// DeferredSignalValues is updated immediately; otherwise a public/private
// input's id is appended to the returned pending list, the bookkeeping
// doComponentInst uses to defer expansion and EvalTemplate's callers don't
// need since a directly-run template has no owner to track pending inputs
// for.
func (ev *Evaluator) registerSignalDecls(body *ast.Block, fullName string) ([]algebra.SignalID, error) {
	decls := collectSignalDecls(body)
	sortSignalDeclsByKind(decls)

	var pending []algebra.SignalID
	for _, d := range decls {
		kind := signalKindFromAST(d.SigKind)
		suffixes, err := ev.generateSignalSuffixes(d.Dims)
		if err != nil {
			return nil, err
		}
		for _, suffix := range suffixes {
			sigFullName := fullName + "." + d.Name + suffix
			// Signal ids are allocated once: a later pass over the same
			// compilation (GenWitness after GenConstraints) reuses the id
			// the first pass assigned rather than growing the store, since
			// the two passes share one signal.Store per New's contract.
			var id algebra.SignalID
			if existing := ev.Signals.GetByName(sigFullName); existing != nil {
				id = existing.ID
			} else {
				id = ev.Signals.Insert(sigFullName, kind, algebra.Value{})
			}
			if v, seeded := ev.DeferredSignalValues[sigFullName]; seeded {
				ev.Signals.Update(id, v)
				delete(ev.DeferredSignalValues, sigFullName)
			} else if kind == signal.PublicInput || kind == signal.PrivateInput {
				pending = append(pending, id)
			}
		}
	}
	return pending, nil
}

func collectSignalDecls(body *ast.Block) []*ast.Declaration {
	var out []*ast.Declaration
	for _, stmt := range body.Stmts {
		if d, ok := stmt.(*ast.Declaration); ok && d.Kind == ast.DeclSignal {
			out = append(out, d)
		}
	}
	return out
}

// kindSortOrder is the canonical Output, PublicInput, PrivateInput, Internal
// ordering a completed circuit's ids must expose (DESIGN.md, Open Question
// 1) — deliberately not signal.Kind's own discriminant order, which exists
// only as a dispatch tag.
func kindSortOrder(k signal.Kind) int {
	switch k {
	case signal.Output:
		return 0
	case signal.PublicInput:
		return 1
	case signal.PrivateInput:
		return 2
	default:
		return 3
	}
}

func sortSignalDeclsByKind(decls []*ast.Declaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		return kindSortOrder(signalKindFromAST(decls[i].SigKind)) < kindSortOrder(signalKindFromAST(decls[j].SigKind))
	})
}

// generateSignalSuffixes evaluates a signal declaration's array dimensions
// and expands them into every bracketed index suffix a name can carry, e.g.
// dims [2,2] yields "[0][0]", "[0][1]", "[1][0]", "[1][1]". A scalar
// declaration (no dims) yields a single empty suffix.
func (ev *Evaluator) generateSignalSuffixes(dims []ast.Expr) ([]string, error) {
	sizes, err := ev.evalDims(dims)
	if err != nil {
		return nil, err
	}
	return generateSelectors(sizes), nil
}

func generateSelectors(sizes []int) []string {
	if len(sizes) == 0 {
		return []string{""}
	}
	rest := generateSelectors(sizes[1:])
	out := make([]string, 0, sizes[0]*len(rest))
	for i := 0; i < sizes[0]; i++ {
		for _, r := range rest {
			out = append(out, fmt.Sprintf("[%d]%s", i, r))
		}
	}
	return out
}

func (ev *Evaluator) evalComponentExpand(m ast.Meta, name string) error {
	err := ev.doComponentExpand(m, name)
	return ev.wrap(m, err)
}

// doComponentExpand is phase 2: walk the template's full body inside the
// scope phase 1 already prepared (params bound, signal declarations
// already no-ops the second time through), with CurrentComponent/
// CurrentFile swapped to the component's own context for the duration.
func (ev *Evaluator) doComponentExpand(m ast.Meta, name string) error {
	cv, ok := ev.Scopes.Get(ev.curScope, name)
	if !ok {
		return zkerr.New(zkerr.NotFound, "%s", name)
	}
	comp, ok := cv.(scope.ComponentValue)
	if !ok {
		return zkerr.New(zkerr.InvalidType, "%s is not a component", name)
	}

	rootID := ev.Scopes.RootOf(ev.curScope)
	tv, ok := ev.Scopes.Get(rootID, comp.Template)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", comp.Template)
	}
	tmpl, ok := tv.(scope.TemplateValue)
	if !ok {
		return zkerr.New(zkerr.NotFound, "template %q", comp.Template)
	}

	prevScope, prevFile, prevComponent := ev.curScope, ev.CurrentFile, ev.CurrentComponent
	ev.curScope = comp.Scope
	ev.CurrentFile = tmpl.Path
	ev.CurrentComponent = comp.FullName

	err := ev.evalStmt(tmpl.Body)

	ev.curScope, ev.CurrentFile, ev.CurrentComponent = prevScope, prevFile, prevComponent
	return err
}

// expandFullName prefixes name with the current component's dotted path,
// the join every signal and sub-component full name goes through.
func (ev *Evaluator) expandFullName(name string) string {
	if ev.CurrentComponent == "" {
		return name
	}
	return ev.CurrentComponent + "." + name
}

// expandSelectors renders v's selector chain as a dotted/bracketed string
// starting from its base name, e.g. `c.pin[0][1]`. limit caps how many
// selectors are consumed; -1 means all of them.
func (ev *Evaluator) expandSelectors(v *ast.Variable, limit int) (string, error) {
	var b strings.Builder
	b.WriteString(v.Name)

	n := len(v.Sels)
	if limit >= 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		switch sel := v.Sels[i].(type) {
		case *ast.PinSelector:
			b.WriteString(".")
			b.WriteString(sel.Name)
		case *ast.IndexSelector:
			rv, err := ev.evalExpr(sel.Index)
			if err != nil {
				return "", err
			}
			idx, err := ev.tryIntoU64(rv)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "[%d]", idx)
		default:
			return "", zkerr.New(zkerr.InvalidSelector, "unrecognized selector")
		}
	}
	return b.String(), nil
}

// expandIndexes reduces a selector chain to the plain integer tuple
// scope.List indexing needs, failing if any selector is a pin rather than
// an index — a list value has no pins to cross.
func (ev *Evaluator) expandIndexes(sels []ast.Selector) ([]int, error) {
	out := make([]int, 0, len(sels))
	for _, sel := range sels {
		is, ok := sel.(*ast.IndexSelector)
		if !ok {
			return nil, zkerr.New(zkerr.InvalidSelector, "expected an index selector")
		}
		rv, err := ev.evalExpr(is.Index)
		if err != nil {
			return nil, err
		}
		n, err := ev.tryIntoU64(rv)
		if err != nil {
			return nil, err
		}
		out = append(out, int(n))
	}
	return out, nil
}

// signalComponent walks v's selector chain backward past any trailing index
// selectors to find the owning sub-component name at the last pin
// boundary, e.g. for `c.in[0]` this returns "c". A variable with no pin
// selector names a signal of the current component itself, which has no
// pending-input bookkeeping to update from here.
func (ev *Evaluator) signalComponent(v *ast.Variable) (string, bool, error) {
	pinIdx := -1
	for i := len(v.Sels) - 1; i >= 0; i-- {
		if _, ok := v.Sels[i].(*ast.IndexSelector); ok {
			continue
		}
		if _, ok := v.Sels[i].(*ast.PinSelector); ok {
			pinIdx = i
		}
		break
	}
	if pinIdx < 0 {
		return "", false, nil
	}
	prefix, err := ev.expandSelectors(v, pinIdx)
	if err != nil {
		return "", false, err
	}
	return prefix, true, nil
}
