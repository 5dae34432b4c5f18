// Package dump turns the Data::Dumper rendering of a batch of variables into nodes of a
// vartree.Tree, allocating a handle for every nested container.
package dump

import (
	"strconv"

	"github.com/uber/perl-dap/src/pdap/internal/replproto"
	"github.com/uber/perl-dap/src/pdap/internal/vartree"
)

// Result describes one parsed dump.
type Result struct {
	// Found is false when the lines hold no dump block at all.
	Found bool
	// Roots are the top-level entries, one per dumped expression.
	Roots []vartree.Node
	// Anomalies are lines that fit none of the expected shapes and were skipped.
	Anomalies []string
	// Preceding are the lines printed before the dump block.
	Preceding []string
}

type parser struct {
	lines     []replproto.DumpLine
	pos       int
	tree      *vartree.Tree
	top       int
	roots     []string
	anomalies []string
}

// Parse reads the first dump block found in lines and adds its entries below parent.
// parent is a scope handle for scope listings, or 0 for evaluation results.
func Parse(lines []string, tree *vartree.Tree, parent int) (Result, error) {
	start := -1
	for i, raw := range lines {
		if replproto.IsPrompt(raw) {
			break
		}
		d := replproto.ClassifyDump(raw)
		if (d.Shape == replproto.DumpIndexedOpen || d.Shape == replproto.DumpIndexedEmpty) &&
			d.Container == replproto.ContainerHash && !d.Blessed {
			start = i
			break
		}
	}
	if start < 0 {
		return Result{}, nil
	}

	res := Result{Found: true, Preceding: lines[:start]}
	if replproto.ClassifyDump(lines[start]).Shape == replproto.DumpIndexedEmpty {
		return res, nil
	}

	p := &parser{tree: tree, top: parent}
	for _, raw := range lines[start+1:] {
		if replproto.IsPrompt(raw) {
			break
		}
		p.lines = append(p.lines, replproto.ClassifyDump(raw))
	}

	if _, _, _, err := p.level(parent, replproto.ContainerHash); err != nil {
		return Result{}, err
	}

	for _, name := range p.roots {
		if n, ok := tree.Child(parent, name); ok {
			res.Roots = append(res.Roots, n)
		}
	}
	res.Anomalies = p.anomalies
	return res, nil
}

// level consumes the entries of one container up to and including its close marker.
// The container kind is taken from the close marker, falling back to the open marker
// when the block is cut short.
func (p *parser) level(handle int, opened replproto.Container) (kind vartree.Kind, class string, count int, err error) {
	index := 0
	for p.pos < len(p.lines) {
		l := p.lines[p.pos]
		p.pos++

		// Hash entries are always keyed, array entries never are.
		if l.Shape != replproto.DumpClose && l.Shape != replproto.DumpUnknown && l.IsNamed() != (opened == replproto.ContainerHash) {
			p.anomalies = append(p.anomalies, l.Raw)
			continue
		}

		switch l.Shape {
		case replproto.DumpClose:
			return kindOf(l.Container), l.Class, count, nil

		case replproto.DumpNamedScalar, replproto.DumpIndexedScalar:
			p.tree.Add(vartree.Node{
				Name:   entryName(l, index),
				Value:  l.Value,
				Kind:   vartree.KindScalar,
				Parent: handle,
			})

		case replproto.DumpNamedOpen, replproto.DumpIndexedOpen:
			h, err := p.tree.NextHandle()
			if err != nil {
				return 0, "", 0, err
			}
			childKind, childClass, childCount, err := p.level(h, l.Container)
			if err != nil {
				return 0, "", 0, err
			}
			p.tree.Add(vartree.Node{
				Name:   entryName(l, index),
				Value:  vartree.Summary(childKind, childClass, childCount),
				Kind:   childKind,
				Class:  childClass,
				Count:  childCount,
				Handle: h,
				Parent: handle,
			})

		case replproto.DumpNamedEmpty, replproto.DumpIndexedEmpty:
			h, err := p.tree.NextHandle()
			if err != nil {
				return 0, "", 0, err
			}
			p.tree.Add(vartree.Node{
				Name:   entryName(l, index),
				Value:  vartree.Summary(kindOf(l.Container), l.Class, 0),
				Kind:   kindOf(l.Container),
				Class:  l.Class,
				Handle: h,
				Parent: handle,
			})

		default:
			p.anomalies = append(p.anomalies, l.Raw)
			continue
		}

		if handle == p.top {
			p.roots = append(p.roots, entryName(l, index))
		}
		count++
		index++
	}
	return kindOf(opened), "", count, nil
}

func entryName(l replproto.DumpLine, index int) string {
	if l.IsNamed() {
		return l.Key
	}
	return strconv.Itoa(index)
}

func kindOf(c replproto.Container) vartree.Kind {
	switch c {
	case replproto.ContainerArray:
		return vartree.KindArray
	case replproto.ContainerHash:
		return vartree.KindHash
	}
	return vartree.KindScalar
}
