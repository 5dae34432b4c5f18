// Package vartree stores the variables of one stop as a single arena of nodes linked to
// their parent container by handle.
package vartree

import (
	"fmt"

	"github.com/uber/perl-dap/src/pdap/internal/errors"
)

// Kind is the shape of a variable value.
type Kind int

const (
	// KindScalar is a leaf value.
	KindScalar Kind = iota
	// KindArray is an ordered container whose children are named by index.
	KindArray
	// KindHash is a keyed container.
	KindHash
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindArray:
		return "ARRAY"
	case KindHash:
		return "HASH"
	}
	return "SCALAR"
}

// Handles at or above ScopeHandleBase identify scope categories; handles of nested
// containers are allocated below it, counting down.
const (
	ScopeHandleBase = 1 << 24

	HandleLocals  = ScopeHandleBase
	HandleGlobals = ScopeHandleBase + 1
)

// Node is a single variable. Handle is 0 for scalars, Parent is 0 for evaluation roots.
type Node struct {
	Name   string
	Value  string
	Kind   Kind
	Class  string
	Count  int
	Handle int
	Parent int
}

// IsRoot reports whether the node has no parent container.
func (n Node) IsRoot() bool {
	return n.Parent == 0 || IsScopeHandle(n.Parent)
}

// Summary formats a container value, e.g. ARRAY(3) or Foo=HASH(2).
func Summary(kind Kind, class string, count int) string {
	if class != "" {
		return fmt.Sprintf("%s=%s(%d)", class, kind, count)
	}
	return fmt.Sprintf("%s(%d)", kind, count)
}

// IsScopeHandle reports whether the handle names a scope category.
func IsScopeHandle(handle int) bool {
	return handle >= ScopeHandleBase
}

// Tree is the arena of variables of the current stop. It is not safe for concurrent use.
type Tree struct {
	nodes     []Node
	byHandle  map[int]int
	children  map[int][]int
	populated map[int]bool
	next      int
}

// New returns an empty Tree.
func New() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset discards every node and restarts handle allocation.
func (t *Tree) Reset() {
	t.nodes = nil
	t.byHandle = make(map[int]int)
	t.children = make(map[int][]int)
	t.populated = make(map[int]bool)
	t.next = ScopeHandleBase - 1
}

// NextHandle allocates a handle for a container.
func (t *Tree) NextHandle() (int, error) {
	if t.next <= 0 {
		return 0, errors.ErrHandlesExhausted
	}
	h := t.next
	t.next--
	return h, nil
}

// Add appends a node and links it below its parent.
// A node reusing the name of an existing child of the same parent replaces it.
func (t *Tree) Add(n Node) {
	if i, ok := t.childIndex(n.Parent, n.Name); ok {
		if old := t.nodes[i].Handle; old != 0 && old != n.Handle {
			delete(t.byHandle, old)
		}
		t.nodes[i] = n
		if n.Handle != 0 {
			t.byHandle[n.Handle] = i
		}
		return
	}

	t.nodes = append(t.nodes, n)
	i := len(t.nodes) - 1
	t.children[n.Parent] = append(t.children[n.Parent], i)
	if n.Handle != 0 {
		t.byHandle[n.Handle] = i
	}
}

// Owner returns the node holding the given container handle.
func (t *Tree) Owner(handle int) (Node, bool) {
	i, ok := t.byHandle[handle]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// Children returns the direct children of a container or scope handle in insertion order.
func (t *Tree) Children(handle int) []Node {
	idx := t.children[handle]
	out := make([]Node, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.nodes[i])
	}
	return out
}

// Child returns the child of a container with the given name.
func (t *Tree) Child(handle int, name string) (Node, bool) {
	i, ok := t.childIndex(handle, name)
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// Known reports whether the handle belongs to the current tree.
func (t *Tree) Known(handle int) bool {
	if IsScopeHandle(handle) {
		return handle == HandleLocals || handle == HandleGlobals
	}
	_, ok := t.byHandle[handle]
	return ok
}

// Populated reports whether the scope has been filled since the last reset.
func (t *Tree) Populated(scope int) bool {
	return t.populated[scope]
}

// MarkPopulated records that the scope has been filled.
func (t *Tree) MarkPopulated(scope int) {
	t.populated[scope] = true
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) childIndex(handle int, name string) (int, bool) {
	for _, i := range t.children[handle] {
		if t.nodes[i].Name == name {
			return i, true
		}
	}
	return 0, false
}
