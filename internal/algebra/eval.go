package algebra

import (
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/field"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// EvalInfix applies an infix arithmetic operator to two algebraic values,
// implementing the closed dispatch matrix of spec.md §4.1: each operator
// accepts a fixed set of (kind, kind) combinations and every other
// combination is an Algebra error, never a silent coercion.
func EvalInfix(lhv Value, op ast.Opcode, rhv Value) (Value, error) {
	switch op {
	case ast.OpAdd:
		return evalAdd(lhv, rhv)
	case ast.OpSub:
		return evalAdd(lhv, rhv.negated())
	case ast.OpMul:
		return evalMul(lhv, rhv)
	case ast.OpDiv:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.Div(b) })
	case ast.OpIntDiv:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.IntDiv(b) })
	case ast.OpMod:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.Mod(b) })
	case ast.OpShiftL:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.Shl(b) })
	case ast.OpShiftR:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.Shr(b) })
	case ast.OpBitAnd:
		return evalFSFSInfallible(lhv, rhv, op, field.FS.And)
	case ast.OpBitOr:
		return evalFSFSInfallible(lhv, rhv, op, field.FS.Or)
	case ast.OpBitXor:
		return evalFSFSInfallible(lhv, rhv, op, field.FS.Xor)
	case ast.OpPow:
		return evalFSFS(lhv, rhv, op, func(a, b field.FS) (field.FS, error) { return a.Pow(b) })
	default:
		return Value{}, opErr(op, lhv, rhv)
	}
}

// EvalPrefix applies a prefix operator to an algebraic value. Only unary
// minus is defined, across all three kinds.
func EvalPrefix(op ast.Opcode, rhv Value) (Value, error) {
	if op != ast.OpSub {
		return Value{}, zkerr.New(zkerr.Algebra, "cannot apply operator %s as prefix", op)
	}
	return rhv.negated(), nil
}

func (v Value) negated() Value {
	switch v.kind {
	case KindFS:
		return FromFS(v.fs.Neg())
	case KindLC:
		return FromLC(v.lc.Neg())
	default:
		return FromQEQ(v.qeq.Neg())
	}
}

// evalAdd implements the Add row of the matrix; Sub reuses it on a
// pre-negated rhv, matching the original's `lhv + &-rhv` pattern.
func evalAdd(lhv, rhv Value) (Value, error) {
	switch {
	case lhv.kind == KindFS && rhv.kind == KindFS:
		return FromFS(lhv.fs.Add(rhv.fs)), nil
	case lhv.kind == KindLC && rhv.kind == KindLC:
		return FromLC(lhv.lc.Add(rhv.lc)), nil
	case lhv.kind == KindFS && rhv.kind == KindLC:
		return FromLC(rhv.lc.AddFS(lhv.fs)), nil
	case lhv.kind == KindLC && rhv.kind == KindFS:
		return FromLC(lhv.lc.AddFS(rhv.fs)), nil
	case lhv.kind == KindFS && rhv.kind == KindQEQ:
		return FromQEQ(rhv.qeq.AddFS(lhv.fs)), nil
	case lhv.kind == KindQEQ && rhv.kind == KindFS:
		return FromQEQ(lhv.qeq.AddFS(rhv.fs)), nil
	case lhv.kind == KindLC && rhv.kind == KindQEQ:
		return FromQEQ(rhv.qeq.AddLC(lhv.lc)), nil
	case lhv.kind == KindQEQ && rhv.kind == KindLC:
		return FromQEQ(lhv.qeq.AddLC(rhv.lc)), nil
	default:
		return Value{}, opErr(ast.OpAdd, lhv, rhv)
	}
}

// evalMul implements the Mul row: LC*LC is the one combination that raises
// degree, producing a QEQ; a QEQ operand on either side requires the other
// side to be a plain FS, since two QEQs can't multiply into a QEQ.
func evalMul(lhv, rhv Value) (Value, error) {
	switch {
	case lhv.kind == KindFS && rhv.kind == KindFS:
		return FromFS(lhv.fs.Mul(rhv.fs)), nil
	case lhv.kind == KindLC && rhv.kind == KindLC:
		return FromQEQ(lhv.lc.Mul(rhv.lc)), nil
	case lhv.kind == KindLC && rhv.kind == KindFS:
		return FromLC(lhv.lc.MulFS(rhv.fs)), nil
	case lhv.kind == KindFS && rhv.kind == KindLC:
		return FromLC(rhv.lc.MulFS(lhv.fs)), nil
	case lhv.kind == KindQEQ && rhv.kind == KindFS:
		return FromQEQ(lhv.qeq.MulFS(rhv.fs)), nil
	case lhv.kind == KindFS && rhv.kind == KindQEQ:
		return FromQEQ(rhv.qeq.MulFS(lhv.fs)), nil
	default:
		return Value{}, opErr(ast.OpMul, lhv, rhv)
	}
}

// evalFSFS implements the operators only defined on two FS operands and
// that can themselves fail (division, shifts, pow, ...).
func evalFSFS(lhv, rhv Value, op ast.Opcode, fn func(a, b field.FS) (field.FS, error)) (Value, error) {
	a, aok := lhv.AsFS()
	b, bok := rhv.AsFS()
	if !aok || !bok {
		return Value{}, opErr(op, lhv, rhv)
	}
	r, err := fn(a, b)
	if err != nil {
		return Value{}, err
	}
	return FromFS(r), nil
}

// evalFSFSInfallible is evalFSFS for the bitwise operators, which never fail.
func evalFSFSInfallible(lhv, rhv Value, op ast.Opcode, fn func(a, b field.FS) field.FS) (Value, error) {
	a, aok := lhv.AsFS()
	b, bok := rhv.AsFS()
	if !aok || !bok {
		return Value{}, opErr(op, lhv, rhv)
	}
	return FromFS(fn(a, b)), nil
}

func kindName(k Kind) string {
	switch k {
	case KindFS:
		return "field-scalar"
	case KindLC:
		return "linear-combination"
	default:
		return "quadratic-equation"
	}
}

func opErr(op ast.Opcode, lhv Value, rhv Value) error {
	return zkerr.New(zkerr.Algebra, "cannot apply operator %s on %s over %s", op, kindName(lhv.kind), kindName(rhv.kind))
}
