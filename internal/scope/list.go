package scope

import (
	"github.com/za-lang/zkcc/internal/algebra"
	"github.com/za-lang/zkcc/internal/field"
)

// List is a nested homogeneous array of algebraic values, addressed by an
// integer-tuple index like `arr[1][2]`. A freshly allocated List is
// default-zero filled at every leaf.
type List struct {
	leaf     algebra.Value
	isLeaf   bool
	children []List
}

// NewList allocates a List of the given dimensions, e.g. NewList(3, 2)
// builds a 3x2 array of zero field scalars.
func NewList(sizes ...int) List {
	if len(sizes) == 0 {
		return List{leaf: algebra.FromFS(field.Zero()), isLeaf: true}
	}
	children := make([]List, sizes[0])
	for i := range children {
		children[i] = NewList(sizes[1:]...)
	}
	return List{children: children}
}

// Get returns the List reached by following indexes, or an error if an
// index is out of range or the path runs into a leaf value too early.
func (l List) Get(indexes []int) (List, error) {
	if len(indexes) == 0 {
		return l, nil
	}
	if l.isLeaf {
		return List{}, errIndexIntoValue(indexes[0])
	}
	if indexes[0] < 0 || indexes[0] >= len(l.children) {
		return List{}, errIndexTooLarge(indexes[0])
	}
	return l.children[indexes[0]].Get(indexes[1:])
}

// Set writes value at the leaf reached by indexes, returning the updated
// root List (List is a value type; mutation is expressed by rebuilding the
// path, matching the teacher's copy-on-write handling of AST-adjacent data).
func (l List) Set(value algebra.Value, indexes []int) (List, error) {
	if l.isLeaf {
		return List{}, errIndexIntoValue(0)
	}
	if len(indexes) == 0 || indexes[0] < 0 || indexes[0] >= len(l.children) {
		return List{}, errInvalidIndex()
	}
	out := List{children: append([]List(nil), l.children...)}
	if len(indexes) == 1 {
		out.children[indexes[0]] = List{leaf: value, isLeaf: true}
		return out, nil
	}
	updated, err := l.children[indexes[0]].Set(value, indexes[1:])
	if err != nil {
		return List{}, err
	}
	out.children[indexes[0]] = updated
	return out, nil
}

// ListLeaf wraps a single algebraic value as a leaf List, used when an
// array-literal element is itself a scalar rather than a nested array.
func ListLeaf(v algebra.Value) List {
	return List{leaf: v, isLeaf: true}
}

// NewListFromChildren builds a List directly from already-evaluated
// children, the array-literal constructor (`[e1, e2, ...]`).
func NewListFromChildren(children []List) List {
	return List{children: children}
}

// AsValue returns l's leaf value, if l is a leaf.
func (l List) AsValue() (algebra.Value, bool) {
	if l.isLeaf {
		return l.leaf, true
	}
	return algebra.Value{}, false
}
