package evaluator

import (
	"fmt"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/field"
	"github.com/za-lang/zkcc/internal/scope"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// evalExpr runs e through the visitor and type-asserts the result back
// into the scope.ReturnValue every expression produces.
func (ev *Evaluator) evalExpr(e ast.Expr) (scope.ReturnValue, error) {
	v, err := e.Accept(ev)
	if err != nil {
		return nil, err
	}
	rv, ok := v.(scope.ReturnValue)
	if !ok {
		return nil, zkerr.New(zkerr.InvalidType, "expression produced no value")
	}
	return rv, nil
}

func (ev *Evaluator) VisitNumber(e *ast.Number) (interface{}, error) {
	return scope.AlgebraReturn{V: algebra.FromFS(field.FromBigInt(e.Value))}, nil
}

func (ev *Evaluator) VisitVariable(e *ast.Variable) (interface{}, error) {
	rv, err := ev.doEvalVariable(e)
	if err != nil {
		return nil, ev.wrap(e.M, err)
	}
	return rv, nil
}

func (ev *Evaluator) doEvalVariable(v *ast.Variable) (scope.ReturnValue, error) {
	nameSel, err := ev.expandSelectors(v, -1)
	if err != nil {
		return nil, err
	}
	fullName := ev.expandFullName(nameSel)

	if sig := ev.Signals.GetByName(fullName); sig != nil {
		if sig.HasValue {
			if fs, ok := sig.Value.AsFS(); ok {
				return scope.AlgebraReturn{V: algebra.FromFS(fs)}, nil
			}
		}
		return scope.AlgebraReturn{V: algebra.FromSignal(sig.ID)}, nil
	}

	sv, ok := ev.Scopes.Get(ev.curScope, v.Name)
	if !ok {
		return nil, zkerr.New(zkerr.NotFound, "%s", nameSel)
	}
	switch val := sv.(type) {
	case scope.AlgebraValue:
		return scope.AlgebraReturn{V: val.V}, nil
	case scope.BoolValue:
		return scope.BoolReturn{V: val.V}, nil
	case scope.ListValue:
		indexes, err := ev.expandIndexes(v.Sels)
		if err != nil {
			return nil, err
		}
		sub, err := val.V.Get(indexes)
		if err != nil {
			return nil, err
		}
		if leaf, ok := sub.AsValue(); ok {
			return scope.AlgebraReturn{V: leaf}, nil
		}
		return scope.ListReturn{V: sub}, nil
	default:
		return nil, zkerr.New(zkerr.InvalidType, "expected a value from variable %q (current binding is %T) [%s]", nameSel, sv, fullName)
	}
}

func (ev *Evaluator) VisitPrefixOp(e *ast.PrefixOp) (interface{}, error) {
	rv, err := ev.doPrefixOp(e)
	if err != nil {
		return nil, ev.wrap(e.M, err)
	}
	return rv, nil
}

func (ev *Evaluator) doPrefixOp(e *ast.PrefixOp) (scope.ReturnValue, error) {
	right, err := ev.evalExpr(e.Rhe)
	if err != nil {
		return nil, err
	}
	rv, err := ev.tryIntoAlgebra(right)
	if err != nil {
		return nil, err
	}
	v, err := algebra.EvalPrefix(e.Op, rv)
	if err != nil {
		return nil, err
	}
	return scope.AlgebraReturn{V: v}, nil
}

func (ev *Evaluator) VisitInfixOp(e *ast.InfixOp) (interface{}, error) {
	rv, err := ev.doInfixOp(e)
	if err != nil {
		return nil, ev.wrap(e.M, err)
	}
	return rv, nil
}

func (ev *Evaluator) doInfixOp(e *ast.InfixOp) (scope.ReturnValue, error) {
	left, err := ev.evalExpr(e.Lhe)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Rhe)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpIntDiv, ast.OpMod,
		ast.OpShiftL, ast.OpShiftR, ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpPow:
		lv, err := ev.tryIntoAlgebra(left)
		if err != nil {
			return nil, err
		}
		rv, err := ev.tryIntoAlgebra(right)
		if err != nil {
			return nil, err
		}
		v, err := algebra.EvalInfix(lv, e.Op, rv)
		if err != nil {
			return nil, err
		}
		return scope.AlgebraReturn{V: v}, nil

	case ast.OpBoolAnd, ast.OpBoolOr:
		lb, err := ev.tryIntoBool(left)
		if err != nil {
			return nil, err
		}
		rb, err := ev.tryIntoBool(right)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.OpBoolAnd {
			return scope.BoolReturn{V: lb && rb}, nil
		}
		return scope.BoolReturn{V: lb || rb}, nil

	case ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
		lf, err := ev.tryIntoFS(left)
		if err != nil {
			return nil, err
		}
		rf, err := ev.tryIntoFS(right)
		if err != nil {
			return nil, err
		}
		cmp := lf.Cmp(rf)
		var res bool
		switch e.Op {
		case ast.OpGt:
			res = cmp > 0
		case ast.OpGte:
			res = cmp >= 0
		case ast.OpLt:
			res = cmp < 0
		default:
			res = cmp <= 0
		}
		return scope.BoolReturn{V: res}, nil

	case ast.OpEq, ast.OpNeq:
		eq, err := ev.valuesEqual(left, right)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.OpNeq {
			eq = !eq
		}
		return scope.BoolReturn{V: eq}, nil

	default:
		return nil, zkerr.New(zkerr.InvalidType, "not yet implemented: infix operator %s", e.Op)
	}
}

func (ev *Evaluator) valuesEqual(l, r scope.ReturnValue) (bool, error) {
	switch lv := l.(type) {
	case scope.BoolReturn:
		rv, ok := r.(scope.BoolReturn)
		if !ok {
			return false, zkerr.New(zkerr.InvalidType, "cannot compare %T == %T", l, r)
		}
		return lv.V == rv.V, nil
	case scope.AlgebraReturn:
		rv, ok := r.(scope.AlgebraReturn)
		if !ok {
			return false, zkerr.New(zkerr.InvalidType, "cannot compare %T == %T", l, r)
		}
		lf, lok := lv.V.AsFS()
		rf, rok := rv.V.AsFS()
		if !lok || !rok {
			return false, zkerr.New(zkerr.InvalidType, "cannot compare non-scalar algebraic values")
		}
		return lf.Eq(rf), nil
	default:
		return false, zkerr.New(zkerr.InvalidType, "cannot compare %T == %T", l, r)
	}
}

func (ev *Evaluator) VisitArrayLiteral(e *ast.ArrayLiteral) (interface{}, error) {
	rv, err := ev.doArrayLiteral(e)
	if err != nil {
		return nil, ev.wrap(e.M, err)
	}
	return rv, nil
}

func (ev *Evaluator) doArrayLiteral(e *ast.ArrayLiteral) (scope.ReturnValue, error) {
	children := make([]scope.List, len(e.Values))
	for i, v := range e.Values {
		rv, err := ev.evalExpr(v)
		if err != nil {
			return nil, err
		}
		switch val := rv.(type) {
		case scope.AlgebraReturn:
			children[i] = scope.ListLeaf(val.V)
		case scope.ListReturn:
			children[i] = val.V
		default:
			return nil, zkerr.New(zkerr.InvalidType, "array element must be algebraic or a list")
		}
	}
	return scope.ListReturn{V: scope.NewListFromChildren(children)}, nil
}

func (ev *Evaluator) VisitFunctionCall(e *ast.FunctionCall) (interface{}, error) {
	rv, err := ev.doFunctionCall(e)
	if err != nil {
		return nil, ev.wrap(e.M, err)
	}
	return rv, nil
}

func (ev *Evaluator) doFunctionCall(e *ast.FunctionCall) (scope.ReturnValue, error) {
	rootID := ev.Scopes.RootOf(ev.curScope)
	fv, ok := ev.Scopes.Get(rootID, e.Name)
	if !ok {
		return nil, zkerr.New(zkerr.NotFound, "function %q", e.Name)
	}
	fn, ok := fv.(scope.FunctionValue)
	if !ok {
		return nil, zkerr.New(zkerr.NotFound, "function %q", e.Name)
	}
	if len(fn.Params) != len(e.Args) {
		return nil, zkerr.New(zkerr.InvalidParameter, "%s", e.Name)
	}

	funcScope := ev.Scopes.New(true, ev.curScope, fmt.Sprintf("%s:%d", ev.CurrentFile, e.M.Start))
	for i, argExpr := range e.Args {
		v, err := ev.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		if err := ev.Scopes.Insert(funcScope, fn.Params[i], scope.FromReturnValue(v)); err != nil {
			return nil, err
		}
	}

	prevFunction, prevFile, prevScope := ev.CurrentFunction, ev.CurrentFile, ev.curScope
	ev.CurrentFunction = e.Name
	ev.CurrentFile = fn.Path
	ev.curScope = funcScope

	err := ev.evalStmt(fn.Body)

	ev.CurrentFunction, ev.CurrentFile, ev.curScope = prevFunction, prevFile, prevScope
	if err != nil {
		return nil, err
	}

	rv, ok := ev.Scopes.TakeReturn(funcScope)
	if !ok {
		return nil, zkerr.New(zkerr.BadFunctionReturn, "%s", e.Name)
	}
	return rv, nil
}

// tryIntoAlgebra, tryIntoBool, tryIntoFS and tryIntoU64 are the evaluator's
// narrowing conversions: every compound expression/operator demands a
// specific flavor of ReturnValue and fails with InvalidType rather than
// silently coercing, matching the closed dispatch spec.md §4.1 requires of
// the algebra layer itself.

func (ev *Evaluator) tryIntoAlgebra(rv scope.ReturnValue) (algebra.Value, error) {
	v, ok := rv.(scope.AlgebraReturn)
	if !ok {
		return algebra.Value{}, zkerr.New(zkerr.InvalidType, "expected an algebraic value, got %T", rv)
	}
	return v.V, nil
}

func (ev *Evaluator) tryIntoBool(rv scope.ReturnValue) (bool, error) {
	v, ok := rv.(scope.BoolReturn)
	if !ok {
		return false, zkerr.New(zkerr.InvalidType, "expected a boolean value, got %T", rv)
	}
	return v.V, nil
}

func (ev *Evaluator) tryIntoFS(rv scope.ReturnValue) (field.FS, error) {
	av, err := ev.tryIntoAlgebra(rv)
	if err != nil {
		return field.FS{}, err
	}
	fs, ok := av.AsFS()
	if !ok {
		return field.FS{}, zkerr.New(zkerr.InvalidType, "expected a field scalar")
	}
	return fs, nil
}

func (ev *Evaluator) tryIntoU64(rv scope.ReturnValue) (uint64, error) {
	fs, err := ev.tryIntoFS(rv)
	if err != nil {
		return 0, err
	}
	return fs.ToSmallInt()
}

func (ev *Evaluator) formatReturnValue(rv scope.ReturnValue) string {
	switch v := rv.(type) {
	case scope.BoolReturn:
		return fmt.Sprintf("%v", v.V)
	case scope.AlgebraReturn:
		return ev.Signals.Format(v.V)
	case scope.ListReturn:
		return "[list]"
	default:
		return "?"
	}
}
