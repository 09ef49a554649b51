package ast

// BodyElement is any top-level item in a source file: an include, a
// function definition, a template definition, or a top-level declaration.
type BodyElement interface {
	Accept(v BodyVisitor) error
	Meta() Meta
}

// BodyVisitor dispatches on every top-level element kind.
type BodyVisitor interface {
	VisitInclude(b *Include) error
	VisitFunctionDef(b *FunctionDef) error
	VisitTemplateDef(b *TemplateDef) error
	VisitTopLevelDeclaration(b *TopLevelDeclaration) error
}

// Include is `include "path"`, guarded against re-processing by content
// hash rather than by path (spec.md §4.2).
type Include struct {
	M    Meta
	Path string
}

func (b *Include) Meta() Meta { return b.M }
func (b *Include) Accept(v BodyVisitor) error { return v.VisitInclude(b) }

// FunctionDef is `function name(params...) { body }`.
type FunctionDef struct {
	M      Meta
	Name   string
	Params []string
	Body   *Block
}

func (b *FunctionDef) Meta() Meta { return b.M }
func (b *FunctionDef) Accept(v BodyVisitor) error { return v.VisitFunctionDef(b) }

// TemplateDef is `template name(params...) { body }`. A template tagged
// "test" is a unit test discovered by package testdiscovery.
type TemplateDef struct {
	M      Meta
	Name   string
	Params []string
	Body   *Block
}

func (b *TemplateDef) Meta() Meta { return b.M }
func (b *TemplateDef) Accept(v BodyVisitor) error { return v.VisitTemplateDef(b) }

// TopLevelDeclaration is a declaration appearing outside any function or
// template body, e.g. a top-level constant.
type TopLevelDeclaration struct {
	M    Meta
	Decl *Declaration
}

func (b *TopLevelDeclaration) Meta() Meta { return b.M }
func (b *TopLevelDeclaration) Accept(v BodyVisitor) error { return v.VisitTopLevelDeclaration(b) }

// File is a parsed source file: an ordered list of top-level elements.
type File struct {
	Path     string
	Elements []BodyElement
}
