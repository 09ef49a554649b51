package evaluator

import (
	"fmt"
	"log"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/scope"
	"github.com/za-lang/zkcc/internal/zkerr"
)

func (ev *Evaluator) evalStmt(s ast.Stmt) error {
	if ev.Mode.SkipEval(s.Meta().Attrs) {
		return nil
	}
	return s.Accept(ev)
}

func (ev *Evaluator) VisitBlock(s *ast.Block) error {
	child := ev.Scopes.New(false, ev.curScope, fmt.Sprintf("%s:%d", ev.CurrentFile, s.M.Start))
	prev := ev.curScope
	ev.curScope = child
	defer func() { ev.curScope = prev }()

	for _, stmt := range s.Stmts {
		if err := ev.evalStmt(stmt); err != nil {
			return err
		}
		if ev.Scopes.HasReturn(child) {
			break
		}
	}
	return nil
}

func (ev *Evaluator) VisitDeclaration(s *ast.Declaration) error {
	err := ev.doDeclaration(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doDeclaration(s *ast.Declaration) error {
	switch s.Kind {
	case ast.DeclVar:
		return ev.evalVarDeclaration(s)
	case ast.DeclSignal:
		// Signals are registered by the owning component's pre-scan
		// (evalComponentInst), not by walking this statement.
		return nil
	case ast.DeclComponent:
		if err := ev.evalComponentDecl(s.M, s.Name, s.Dims); err != nil {
			return err
		}
		if s.ComponentOf != nil {
			return ev.evalComponentInst(s.M, s.Name, s.ComponentOf)
		}
		return nil
	default:
		return nil
	}
}

func (ev *Evaluator) evalVarDeclaration(s *ast.Declaration) error {
	if s.Init == nil {
		if len(s.Dims) > 0 {
			dims, err := ev.evalDims(s.Dims)
			if err != nil {
				return err
			}
			return ev.Scopes.Insert(ev.curScope, s.Name, scope.ListValue{V: scope.NewList(dims...)})
		}
		return ev.Scopes.Insert(ev.curScope, s.Name, scope.UndefVar{})
	}
	rv, err := ev.evalExpr(s.Init)
	if err != nil {
		return err
	}
	return ev.Scopes.Insert(ev.curScope, s.Name, scope.FromReturnValue(rv))
}

func (ev *Evaluator) evalDims(dims []ast.Expr) ([]int, error) {
	out := make([]int, len(dims))
	for i, d := range dims {
		rv, err := ev.evalExpr(d)
		if err != nil {
			return nil, err
		}
		n, err := ev.tryIntoU64(rv)
		if err != nil {
			return nil, err
		}
		out[i] = int(n)
	}
	return out, nil
}

func (ev *Evaluator) VisitAssignment(s *ast.Assignment) error {
	err := ev.doAssignment(s)
	return ev.wrap(s.M, err)
}

func opFromAssign(op ast.Opcode) (ast.Opcode, bool) {
	switch op {
	case ast.OpAssignAdd:
		return ast.OpAdd, true
	case ast.OpAssignSub:
		return ast.OpSub, true
	case ast.OpAssignMul:
		return ast.OpMul, true
	case ast.OpAssignDiv:
		return ast.OpDiv, true
	case ast.OpAssignMod:
		return ast.OpMod, true
	case ast.OpAssignShiftL:
		return ast.OpShiftL, true
	case ast.OpAssignShiftR:
		return ast.OpShiftR, true
	case ast.OpAssignBitAnd:
		return ast.OpBitAnd, true
	case ast.OpAssignBitOr:
		return ast.OpBitOr, true
	case ast.OpAssignBitXor:
		return ast.OpBitXor, true
	default:
		return 0, false
	}
}

func (ev *Evaluator) doAssignment(s *ast.Assignment) error {
	// `c = Template(args)` instantiates a declared-but-not-yet-bound
	// component rather than rebinding a plain variable.
	if s.Op == ast.OpAssign {
		if fc, ok := s.Value.(*ast.FunctionCall); ok {
			if sv, exists := ev.Scopes.Get(ev.curScope, s.Target.Name); exists {
				switch sv.(type) {
				case scope.UndefComponent, scope.ComponentValue:
					return ev.evalComponentInst(s.M, s.Target.Name, fc)
				}
			}
		}
	}

	right, err := ev.evalExpr(s.Value)
	if err != nil {
		return err
	}

	if len(s.Target.Sels) > 0 {
		return ev.assignIndexed(s.Target, s.Op, right)
	}

	cur, ok := ev.Scopes.Get(ev.curScope, s.Target.Name)
	if !ok {
		return zkerr.New(zkerr.NotFound, "%s", s.Target.Name)
	}
	newVal, err := ev.combine(cur, s.Op, right)
	if err != nil {
		return err
	}
	return ev.Scopes.Update(ev.curScope, s.Target.Name, newVal)
}

func (ev *Evaluator) combine(cur scope.ScopeValue, op ast.Opcode, right scope.ReturnValue) (scope.ScopeValue, error) {
	if op == ast.OpAssign {
		return scope.FromReturnValue(right), nil
	}
	infixOp, ok := opFromAssign(op)
	if !ok {
		return nil, zkerr.New(zkerr.InvalidType, "invalid assignment operator %s", op)
	}
	curAlg, ok := cur.(scope.AlgebraValue)
	if !ok {
		return nil, zkerr.New(zkerr.InvalidType, "compound assignment target is not algebraic")
	}
	rightAlg, err := ev.tryIntoAlgebra(right)
	if err != nil {
		return nil, err
	}
	v, err := algebra.EvalInfix(curAlg.V, infixOp, rightAlg)
	if err != nil {
		return nil, err
	}
	return scope.AlgebraValue{V: v}, nil
}

func (ev *Evaluator) assignIndexed(target *ast.Variable, op ast.Opcode, right scope.ReturnValue) error {
	cur, ok := ev.Scopes.Get(ev.curScope, target.Name)
	if !ok {
		return zkerr.New(zkerr.NotFound, "%s", target.Name)
	}
	lv, ok := cur.(scope.ListValue)
	if !ok {
		return zkerr.New(zkerr.InvalidType, "%s is not an indexable value", target.Name)
	}

	indexes, err := ev.expandIndexes(target.Sels)
	if err != nil {
		return err
	}

	rightAlg, err := ev.tryIntoAlgebra(right)
	if err != nil {
		return err
	}

	newLeaf := rightAlg
	if op != ast.OpAssign {
		infixOp, ok := opFromAssign(op)
		if !ok {
			return zkerr.New(zkerr.InvalidType, "invalid assignment operator %s", op)
		}
		curList, err := lv.V.Get(indexes)
		if err != nil {
			return err
		}
		curLeaf, ok := curList.AsValue()
		if !ok {
			return zkerr.New(zkerr.InvalidType, "indexed target is not a scalar")
		}
		newLeaf, err = algebra.EvalInfix(curLeaf, infixOp, rightAlg)
		if err != nil {
			return err
		}
	}

	updated, err := lv.V.Set(newLeaf, indexes)
	if err != nil {
		return err
	}
	return ev.Scopes.Update(ev.curScope, target.Name, scope.ListValue{V: updated})
}

func (ev *Evaluator) VisitIfElse(s *ast.IfElse) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doIfElse(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doIfElse(s *ast.IfElse) error {
	rv, err := ev.evalExpr(s.Cond)
	if err != nil {
		return err
	}
	cond, ok := rv.(scope.BoolReturn)
	if !ok {
		return zkerr.New(zkerr.InvalidType, "if condition is not boolean")
	}
	if cond.V {
		return ev.evalStmt(s.Then)
	}
	if s.Else != nil {
		return ev.evalStmt(s.Else)
	}
	return nil
}

func (ev *Evaluator) VisitFor(s *ast.For) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doFor(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doFor(s *ast.For) error {
	child := ev.Scopes.New(false, ev.curScope, fmt.Sprintf("%s:%d", ev.CurrentFile, s.M.Start))
	prev := ev.curScope
	ev.curScope = child
	defer func() { ev.curScope = prev }()

	if s.Init != nil {
		if err := ev.evalStmt(s.Init); err != nil {
			return err
		}
	}
	for {
		rv, err := ev.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		cond, ok := rv.(scope.BoolReturn)
		if !ok {
			return zkerr.New(zkerr.InvalidType, "for loop condition is not boolean")
		}
		if !cond.V {
			break
		}
		if err := ev.evalStmt(s.Body); err != nil {
			return err
		}
		if ev.Scopes.HasReturn(child) {
			break
		}
		if s.Step != nil {
			if err := ev.evalStmt(s.Step); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ev *Evaluator) VisitWhile(s *ast.While) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doWhile(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doWhile(s *ast.While) error {
	child := ev.Scopes.New(false, ev.curScope, fmt.Sprintf("%s:%d", ev.CurrentFile, s.M.Start))
	prev := ev.curScope
	ev.curScope = child
	defer func() { ev.curScope = prev }()

	for {
		rv, err := ev.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		cond, ok := rv.(scope.BoolReturn)
		if !ok {
			return zkerr.New(zkerr.InvalidType, "while loop condition is not boolean")
		}
		if !cond.V {
			break
		}
		if err := ev.evalStmt(s.Body); err != nil {
			return err
		}
		if ev.Scopes.HasReturn(child) {
			break
		}
	}
	return nil
}

func (ev *Evaluator) VisitReturn(s *ast.Return) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doReturn(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doReturn(s *ast.Return) error {
	rv, err := ev.evalExpr(s.Value)
	if err != nil {
		return err
	}
	ev.Scopes.SetReturn(ev.curScope, rv)
	return nil
}

func (ev *Evaluator) VisitSignalLeft(s *ast.SignalLeft) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doSignalLeft(s.M, s.Target, s.Value, s.Constrain)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) VisitSignalRight(s *ast.SignalRight) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.doSignalLeft(s.M, s.Target, s.Value, s.Constrain)
	return ev.wrap(s.M, err)
}

// doSignalLeft implements both `signal <-- expr` / `signal <== expr` and
// the mirrored `expr --> signal` / `expr ==> signal`, since the two are
// identical once the target/value are picked apart.
//
// The ordering of the implicit constraint relative to the wire write is
// mode-dependent and is the crux of why `<==` behaves differently across
// passes: in GenConstraints the constraint captures the relationship
// symbolically before any value exists, so it must run first; in
// GenWitness the wire write computes the concrete value first, and the
// constraint then checks that value actually satisfies the relationship.
func (ev *Evaluator) doSignalLeft(m ast.Meta, target *ast.Variable, value ast.Expr, constrain bool) error {
	if constrain && ev.Mode == GenConstraints {
		if err := ev.signalEq(target, value); err != nil {
			return err
		}
	}

	if err := ev.wireSignal(m, target, value); err != nil {
		return err
	}

	if constrain && ev.Mode == GenWitness {
		if err := ev.signalEq(target, value); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) wireSignal(m ast.Meta, target *ast.Variable, valueExpr ast.Expr) error {
	nameSel, err := ev.expandSelectors(target, -1)
	if err != nil {
		return err
	}
	fullName := ev.expandFullName(nameSel)
	sig := ev.Signals.GetByName(fullName)
	if sig == nil {
		return zkerr.New(zkerr.NotFound, "signal %q", fullName)
	}

	if ev.Mode == GenWitness {
		rv, err := ev.evalExpr(valueExpr)
		if err != nil {
			return err
		}
		av, err := ev.tryIntoAlgebra(rv)
		if err != nil {
			return err
		}
		ev.Signals.Update(sig.ID, av)
	}

	return ev.maybeExpandOwner(m, target, sig.ID)
}

// maybeExpandOwner decrements the pending-input count of the component
// target's signal belongs to, if any, and expands that component's body
// once every one of its inputs has been wired — the lazy expansion
// mechanism spec.md §4.2 describes.
func (ev *Evaluator) maybeExpandOwner(m ast.Meta, target *ast.Variable, id algebra.SignalID) error {
	compName, ok, err := ev.signalComponent(target)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	cv, exists := ev.Scopes.Get(ev.curScope, compName)
	if !exists {
		return nil
	}
	comp, ok := cv.(scope.ComponentValue)
	if !ok {
		return nil
	}

	remaining := make([]algebra.SignalID, 0, len(comp.PendingInputs))
	removed := false
	for _, pid := range comp.PendingInputs {
		if pid == id && !removed {
			removed = true
			continue
		}
		remaining = append(remaining, pid)
	}
	if !removed {
		return nil
	}
	comp.PendingInputs = remaining
	if err := ev.Scopes.Update(ev.curScope, compName, comp); err != nil {
		return err
	}
	if len(remaining) == 0 {
		return ev.evalComponentExpand(m, compName)
	}
	return nil
}

func (ev *Evaluator) VisitSignalEq(s *ast.SignalEq) error {
	if ev.Mode.SkipEval(s.M.Attrs) {
		return nil
	}
	err := ev.signalEq(s.Lhe, s.Rhe)
	return ev.wrap(s.M, err)
}

// signalEq is `lhe === rhe`: evaluate both sides, reduce to their
// difference, and either push a constraint (GenConstraints) or check the
// difference vanishes (GenWitness). A difference that collapses to a bare
// field scalar during GenConstraints means there is nothing left to
// constrain — almost always a sign the circuit asserted a tautology or a
// contradiction at compile time rather than at the signal level.
func (ev *Evaluator) signalEq(lhe, rhe ast.Expr) error {
	leftRV, err := ev.evalExpr(lhe)
	if err != nil {
		return err
	}
	rightRV, err := ev.evalExpr(rhe)
	if err != nil {
		return err
	}
	leftAlg, err := ev.tryIntoAlgebra(leftRV)
	if err != nil {
		return err
	}
	rightAlg, err := ev.tryIntoAlgebra(rightRV)
	if err != nil {
		return err
	}

	diff, err := algebra.EvalInfix(leftAlg, ast.OpSub, rightAlg)
	if err != nil {
		return err
	}

	switch ev.Mode {
	case GenWitness:
		fs, ok := diff.AsFS()
		if !ok {
			return zkerr.New(zkerr.CannotCheckConstraint, "constraint %s === %s did not reduce to a field scalar", ev.Signals.Format(leftAlg), ev.Signals.Format(rightAlg))
		}
		if !fs.IsZero() {
			return zkerr.New(zkerr.CannotCheckConstraint, "constraint %s === %s does not hold", ev.Signals.Format(leftAlg), ev.Signals.Format(rightAlg))
		}
		return nil
	case GenConstraints:
		if _, ok := diff.AsFS(); ok {
			return zkerr.New(zkerr.CannotGenerateConstraint, "constraint %s === %s reduces to a constant; nothing to constrain", ev.Signals.Format(leftAlg), ev.Signals.Format(rightAlg))
		}
		idx := ev.Constraints.Push(diff.IntoQEQ(), fmt.Sprintf("%s === %s", ev.Signals.Format(leftAlg), ev.Signals.Format(rightAlg)))
		if n := idx + 1; n%100000 == 0 {
			log.Printf("generated %s constraints", humanize.Comma(int64(n)))
		}
		return nil
	default:
		return nil
	}
}

func (ev *Evaluator) VisitInternalCall(s *ast.InternalCall) error {
	err := ev.doInternalCall(s)
	return ev.wrap(s.M, err)
}

func (ev *Evaluator) doInternalCall(s *ast.InternalCall) error {
	switch s.Name {
	case "dbg_signals":
		if ev.Debug {
			for i := 0; i < ev.Signals.Len(); i++ {
				log.Println(ev.Signals.String(algebra.SignalID(i)))
			}
		}
		return nil
	case "dbg":
		if ev.Debug {
			parts := make([]string, len(s.Args))
			for i, arg := range s.Args {
				rv, err := ev.evalExpr(arg)
				if err != nil {
					return err
				}
				parts[i] = ev.formatReturnValue(rv)
			}
			log.Println("dbg", strings.Join(parts, " "))
		}
		return nil
	default:
		return zkerr.New(zkerr.NotFound, "internal function %s!", s.Name)
	}
}

func (ev *Evaluator) VisitExprStmt(s *ast.ExprStmt) error {
	_, err := ev.evalExpr(s.Expr)
	return err
}
