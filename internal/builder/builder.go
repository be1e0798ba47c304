// Package builder reconstructs a document tree from a flat key/value map.
package builder

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/KimNorgaard/go-xmlkv/keypath"
	"github.com/KimNorgaard/go-xmlkv/tree"
)

var (
	// ErrEmpty is returned when there are no keys to build from.
	ErrEmpty = errors.New("xmlkv: cannot build a document from an empty map")
	// ErrMultipleRoots is returned when the keys do not agree on a single
	// root element.
	ErrMultipleRoots = errors.New("keys describe more than one root element")
)

// KeyError reports the key a build failed on.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("xmlkv: key %q: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

type entry struct {
	path  keypath.Path
	value string
}

// Build creates a document through f from the entries of m. Keys are
// processed in lexicographic order so the result does not depend on map
// iteration order. Every key is checked before the first element is
// created; on error nothing is returned.
func Build(g *keypath.Grammar, m map[string]string, f tree.Factory) (tree.Container, error) {
	if len(m) == 0 {
		return nil, ErrEmpty
	}

	entries, err := parseKeys(g, m)
	if err != nil {
		return nil, err
	}

	start := g.Config().RepetitionStart
	doc := f.NewDocument()
	root := &slot{c: doc}
	for _, e := range entries {
		cur := root
		for _, seg := range e.path {
			idx := start
			if seg.Indexed {
				idx = seg.Index
			}
			cur = cur.child(seg.Name, idx-start)
		}

		last := e.path[len(e.path)-1]
		if last.IsAttr() {
			cur.el.SetAttr(last.Attr, e.value)
		} else {
			cur.el.SetText(e.value)
		}
	}
	return doc, nil
}

// parseKeys splits the keys of m in sorted order and checks that they
// share one root and that every index lies between the repetition start and
// start+len(m)-1.
func parseKeys(g *keypath.Grammar, m map[string]string) ([]entry, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	start := g.Config().RepetitionStart
	entries := make([]entry, 0, len(keys))
	var rootName string
	for _, key := range keys {
		p, err := g.Split(key)
		if err != nil {
			return nil, &KeyError{Key: key, Err: err}
		}

		for _, seg := range p {
			if seg.Indexed && seg.Index < start {
				return nil, &KeyError{Key: key, Err: &keypath.SegmentError{
					Segment: g.FormatSegment(seg),
					Reason:  "index below repetition start " + strconv.Itoa(start),
				}}
			}
		}

		root := p[0]
		if root.Indexed && root.Index != start {
			return nil, &KeyError{Key: key, Err: ErrMultipleRoots}
		}
		if rootName == "" {
			rootName = root.Name
		} else if root.Name != rootName {
			return nil, &KeyError{Key: key, Err: ErrMultipleRoots}
		}

		// A group of n siblings flattens to at least n keys, so a larger
		// index can only describe placeholders.
		for _, seg := range p {
			if seg.Indexed && seg.Index-start >= len(m) {
				return nil, &KeyError{Key: key, Err: &keypath.SegmentError{
					Segment: g.FormatSegment(seg),
					Reason:  "index exceeds the number of keys",
				}}
			}
		}

		entries = append(entries, entry{path: p, value: m[key]})
	}
	return entries, nil
}

// slot tracks the elements created below one container, grouped by name in
// creation order, so a (name, index) pair resolves without reading the tree
// back.
type slot struct {
	c    tree.Container
	el   tree.Element
	kids map[string][]*slot
}

// child returns the n-th (zero based) child called name, appending
// elements until the group is large enough.
func (s *slot) child(name string, n int) *slot {
	if s.kids == nil {
		s.kids = make(map[string][]*slot)
	}
	group := s.kids[name]
	for len(group) <= n {
		el := s.c.AppendElement(name)
		group = append(group, &slot{c: el, el: el})
	}
	s.kids[name] = group
	return group[n]
}
