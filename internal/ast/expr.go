package ast

import "math/big"

// Expr is any expression node. Following the teacher's visitor idiom, each
// concrete type implements Accept by calling the matching Visit method.
type Expr interface {
	Accept(v ExprVisitor) (interface{}, error)
	Meta() Meta
}

// ExprVisitor dispatches on every expression kind named in spec.md §6.
type ExprVisitor interface {
	VisitFunctionCall(e *FunctionCall) (interface{}, error)
	VisitVariable(e *Variable) (interface{}, error)
	VisitNumber(e *Number) (interface{}, error)
	VisitPrefixOp(e *PrefixOp) (interface{}, error)
	VisitInfixOp(e *InfixOp) (interface{}, error)
	VisitArrayLiteral(e *ArrayLiteral) (interface{}, error)
}

// Selector is one link in a variable's selector chain: `.pin` or `[index]`.
type Selector interface {
	isSelector()
}

// PinSelector is the `.pin` form — selecting a sub-component's signal.
type PinSelector struct {
	Name string
}

func (*PinSelector) isSelector() {}

// IndexSelector is the `[index]` form — an expression evaluated to an
// integer index.
type IndexSelector struct {
	Index Expr
}

func (*IndexSelector) isSelector() {}

// FunctionCall is `name(args...)`.
type FunctionCall struct {
	M    Meta
	Name string
	Args []Expr
}

func (e *FunctionCall) Meta() Meta { return e.M }
func (e *FunctionCall) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitFunctionCall(e)
}

// Variable is a name plus its selector chain: `x`, `c.pin`, `arr[1][2]`.
type Variable struct {
	M    Meta
	Name string
	Sels []Selector
}

func (e *Variable) Meta() Meta { return e.M }
func (e *Variable) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitVariable(e)
}

// Number is a big-integer literal.
type Number struct {
	M     Meta
	Value *big.Int
}

func (e *Number) Meta() Meta { return e.M }
func (e *Number) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitNumber(e)
}

// PrefixOp is `op rhe`, e.g. unary minus.
type PrefixOp struct {
	M   Meta
	Op  Opcode
	Rhe Expr
}

func (e *PrefixOp) Meta() Meta { return e.M }
func (e *PrefixOp) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitPrefixOp(e)
}

// InfixOp is `lhe op rhe`.
type InfixOp struct {
	M   Meta
	Lhe Expr
	Op  Opcode
	Rhe Expr
}

func (e *InfixOp) Meta() Meta { return e.M }
func (e *InfixOp) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitInfixOp(e)
}

// ArrayLiteral is `[v1, v2, ...]`.
type ArrayLiteral struct {
	M      Meta
	Values []Expr
}

func (e *ArrayLiteral) Meta() Meta { return e.M }
func (e *ArrayLiteral) Accept(v ExprVisitor) (interface{}, error) {
	return v.VisitArrayLiteral(e)
}
