// Package flattener turns a document tree into a flat key/value map.
package flattener

import (
	"github.com/KimNorgaard/go-xmlkv/keypath"
	"github.com/KimNorgaard/go-xmlkv/tree"
)

// Flatten walks the tree rooted at root and returns one entry per leaf
// element and, when the grammar enables attribute support, one entry per
// attribute. Keys start with the root element name.
func Flatten(g *keypath.Grammar, root tree.Node) map[string]string {
	cfg := g.Config()
	f := &flattener{
		g:     g,
		start: cfg.RepetitionStart,
		attrs: cfg.AttributeSupport,
		out:   make(map[string]string),
	}
	f.flatten(root, g.FormatSegment(keypath.Segment{Name: root.Name()}))
	return f.out
}

type flattener struct {
	g     *keypath.Grammar
	start int
	attrs bool
	out   map[string]string
}

// flatten emits the entries of n, whose own key is key.
func (f *flattener) flatten(n tree.Node, key string) {
	if f.attrs {
		for _, a := range n.Attrs() {
			f.out[f.g.Attribute(key, a.Name)] = a.Value
		}
	}

	if tree.IsLeaf(n) {
		f.out[key] = n.Text()
		return
	}

	children := n.Children()

	for i, seg := range f.segments(children) {
		f.flatten(children[i], f.g.Child(key, seg))
	}
}

// segments names every child. Members of a group of same-named siblings are
// numbered in document order from the repetition start; a child without
// same-named siblings gets no index.
func (f *flattener) segments(children []tree.Node) []keypath.Segment {
	counts := make(map[string]int, len(children))
	for _, c := range children {
		counts[c.Name()]++
	}

	seen := make(map[string]int, len(counts))
	segs := make([]keypath.Segment, len(children))
	for i, c := range children {
		name := c.Name()
		segs[i] = keypath.Segment{Name: name}
		if counts[name] > 1 {
			segs[i].Index = f.start + seen[name]
			segs[i].Indexed = true
			seen[name]++
		}
	}
	return segs
}
