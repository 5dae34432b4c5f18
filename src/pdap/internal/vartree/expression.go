package vartree

import (
	"strings"

	"github.com/uber/perl-dap/src/pdap/internal/errors"
)

type step struct {
	container Kind
	key       string
}

// Expression rebuilds the Perl expression addressing the named child of a container.
// Children of a scope, or of no container at all, are addressed by their own name.
func (t *Tree) Expression(handle int, name string) (string, error) {
	if handle == 0 || IsScopeHandle(handle) {
		return name, nil
	}

	owner, ok := t.Owner(handle)
	if !ok {
		return "", &errors.UnknownHandleError{Handle: handle}
	}

	steps := []step{{container: owner.Kind, key: name}}
	for !owner.IsRoot() {
		key := owner.Name
		owner, ok = t.Owner(owner.Parent)
		if !ok {
			return "", &errors.UnknownHandleError{Handle: handle}
		}
		steps = append(steps, step{container: owner.Kind, key: key})
	}

	var b strings.Builder
	afterArrow := writeBase(&b, owner.Name)
	closedIndex := false
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		switch s.container {
		case KindArray:
			b.WriteString("[" + s.key + "]")
			closedIndex = true
		default:
			if closedIndex && !afterArrow {
				b.WriteString("->")
			}
			b.WriteString("{" + quoteKey(s.key) + "}")
			closedIndex = false
		}
		afterArrow = false
	}
	return b.String(), nil
}

// writeBase writes the root of an expression and reports whether it already ends in an arrow.
// Scalars hold references and are dereferenced with an arrow; arrays and hashes are
// element-accessed through the scalar sigil.
func writeBase(b *strings.Builder, root string) bool {
	if root == "" {
		return false
	}
	switch root[0] {
	case '@', '%':
		b.WriteString("$" + root[1:])
		return false
	case '$':
		b.WriteString(root + "->")
		return true
	}
	b.WriteString(root)
	return false
}

func quoteKey(key string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(key) + "'"
}
