// Package scope implements the evaluator's lexical environment: a chain of
// scopes holding variable/component/function bindings, realized as an
// arena of scopes addressed by integer id rather than Rust's
// RefCell/borrowed-reference chain, per the arena-plus-id design this
// corpus favors for interior-mutable trees.
package scope

import (
	"fmt"

	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/ast"
	"github.com/za-lang/zkcc/internal/zkerr"
)

// ID addresses a scope within an Arena: it is the frame's index, handed out
// by Arena.Root and Arena.New (the first frame of an arena has ID 0).
type ID int

const noParent ID = -1

// ReturnValue is what a function call or template instantiation resolves
// to: a boolean, an algebraic value, or a list.
type ReturnValue interface{ isReturnValue() }

type BoolReturn struct{ V bool }
type AlgebraReturn struct{ V algebra.Value }
type ListReturn struct{ V List }

func (BoolReturn) isReturnValue()    {}
func (AlgebraReturn) isReturnValue() {}
func (ListReturn) isReturnValue()    {}

// ScopeValue is anything a name in scope can be bound to.
type ScopeValue interface{ isScopeValue() }

// UndefVar marks a name declared but not yet assigned.
type UndefVar struct{}

// UndefComponent marks a component declared but not yet instantiated.
type UndefComponent struct{}

type BoolValue struct{ V bool }
type AlgebraValue struct{ V algebra.Value }
type ListValue struct{ V List }

// FunctionValue is a bound function definition, closed over the file it
// was declared in (functions cannot close over outer variables, so no
// captured environment is stored, matching the original's FnOnce-free
// design).
type FunctionValue struct {
	Params []string
	Body   *ast.Block
	Path   string
}

// TemplateValue is a bound template definition.
type TemplateValue struct {
	Attrs  ast.Attributes
	Params []string
	Body   *ast.Block
	Path   string
}

// ComponentValue is a declared component: either still waiting for its
// remaining input signals (PendingInputs non-empty) or fully expanded
// (PendingInputs empty).
type ComponentValue struct {
	Template      string
	Path          string
	Args          []ReturnValue
	PendingInputs []algebra.SignalID
	Scope         ID     // the scope phase 1 prepared, reused for phase-2 expansion
	FullName      string // this component's own dotted name
}

func (UndefVar) isScopeValue()        {}
func (UndefComponent) isScopeValue()  {}
func (BoolValue) isScopeValue()       {}
func (AlgebraValue) isScopeValue()    {}
func (ListValue) isScopeValue()       {}
func (FunctionValue) isScopeValue()   {}
func (TemplateValue) isScopeValue()   {}
func (ComponentValue) isScopeValue()  {}

// FromReturnValue lifts a ReturnValue into the ScopeValue it's stored as
// after a function call's result is bound to a variable.
func FromReturnValue(v ReturnValue) ScopeValue {
	switch rv := v.(type) {
	case BoolReturn:
		return BoolValue{rv.V}
	case AlgebraReturn:
		return AlgebraValue{rv.V}
	case ListReturn:
		return ListValue{rv.V}
	default:
		panic(fmt.Sprintf("unreachable return value type %T", v))
	}
}

type frame struct {
	start       bool // true at a function/template call boundary: lookups stop here
	parent      ID
	pos         string
	vars        map[string]ScopeValue
	returnValue ReturnValue
	hasReturn   bool
}

// Arena owns every live scope frame, addressed by ID. Frames are never
// freed individually; the whole arena is dropped together once evaluation
// of a component/function call tree completes.
type Arena struct {
	frames []*frame
}

// NewArena returns an empty arena.
func NewArena() *Arena { return &Arena{} }

// Root creates the outermost scope (start=true, no parent).
func (a *Arena) Root(pos string) ID {
	return a.New(true, noParent, pos)
}

// New creates a scope frame, linked to parent (or noParent for a root), and
// returns its id. start marks a function/template call boundary: Get/
// Contains/Update will not search past a start frame into its parent chain
// beyond the frame itself unless start is false.
func (a *Arena) New(start bool, parent ID, pos string) ID {
	a.frames = append(a.frames, &frame{
		start:  start,
		parent: parent,
		pos:    pos,
		vars:   make(map[string]ScopeValue),
	})
	return ID(len(a.frames) - 1)
}

func (a *Arena) get(id ID) *frame { return a.frames[id] }

// RootOf walks up the parent chain to the outermost scope reachable from id
// (ignoring the start-boundary short circuit Get/Update honor — this always
// walks to the true top, where the evaluator looks up function and
// template definitions).
func (a *Arena) RootOf(id ID) ID {
	cur := id
	for a.get(cur).parent != noParent {
		cur = a.get(cur).parent
	}
	return cur
}

// Insert binds a new name in scope id. It is an error to shadow an existing
// binding in the same frame.
func (a *Arena) Insert(id ID, key string, v ScopeValue) error {
	f := a.get(id)
	if _, exists := f.vars[key]; exists {
		return zkerr.New(zkerr.AlreadyExists, "cannot insert duplicate key %q into scope", key)
	}
	f.vars[key] = v
	return nil
}

// Get looks up key starting at id and walking outward, stopping at (and
// including) the first start-boundary frame.
func (a *Arena) Get(id ID, key string) (ScopeValue, bool) {
	f := a.get(id)
	if v, ok := f.vars[key]; ok {
		return v, true
	}
	if f.start || f.parent == noParent {
		return nil, false
	}
	return a.Get(f.parent, key)
}

// Contains reports whether key is visible from id.
func (a *Arena) Contains(id ID, key string) bool {
	_, ok := a.Get(id, key)
	return ok
}

// Update overwrites an existing binding visible from id, failing with
// NotFound if key is not yet bound anywhere on the visible chain.
func (a *Arena) Update(id ID, key string, v ScopeValue) error {
	f := a.get(id)
	if _, ok := f.vars[key]; ok {
		f.vars[key] = v
		return nil
	}
	if f.start || f.parent == noParent {
		return zkerr.New(zkerr.NotFound, "undeclared variable %q", key)
	}
	return a.Update(f.parent, key, v)
}

// SetReturn records a function/template call's return value at the nearest
// enclosing start-boundary frame.
func (a *Arena) SetReturn(id ID, v ReturnValue) {
	f := a.get(id)
	if f.start {
		f.returnValue = v
		f.hasReturn = true
		return
	}
	if f.parent != noParent {
		a.SetReturn(f.parent, v)
	}
}

// TakeReturn consumes the return value set at the nearest enclosing
// start-boundary frame, if any.
func (a *Arena) TakeReturn(id ID) (ReturnValue, bool) {
	f := a.get(id)
	if f.start {
		if !f.hasReturn {
			return nil, false
		}
		v := f.returnValue
		f.returnValue = nil
		f.hasReturn = false
		return v, true
	}
	if f.parent == noParent {
		return nil, false
	}
	return a.TakeReturn(f.parent)
}

// HasReturn reports whether the nearest enclosing start-boundary frame has
// a pending return value.
func (a *Arena) HasReturn(id ID) bool {
	f := a.get(id)
	if f.start {
		return f.hasReturn
	}
	if f.parent == noParent {
		return false
	}
	return a.HasReturn(f.parent)
}

// Dump renders every frame from id up to the root, including frames beyond
// a start boundary, for error-context snapshots.
func (a *Arena) Dump(id ID) string {
	var out string
	cur := id
	for {
		f := a.get(cur)
		out += fmt.Sprintf("-- %s (start=%v) --\n", f.pos, f.start)
		for k := range f.vars {
			out += fmt.Sprintf("  %s\n", k)
		}
		if f.parent == noParent {
			break
		}
		cur = f.parent
	}
	return out
}
