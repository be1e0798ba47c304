package xmlkv

import (
	"fmt"
	"maps"
	"slices"

	"github.com/KimNorgaard/go-xmlkv/internal/builder"
	"github.com/KimNorgaard/go-xmlkv/internal/flattener"
	"github.com/KimNorgaard/go-xmlkv/keypath"
	"github.com/KimNorgaard/go-xmlkv/tree"
	"github.com/beevik/etree"
)

// FlatMap maps flat keys to values.
type FlatMap map[string]string

// Keys returns the keys of m in lexicographic order.
func (m FlatMap) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Codec converts between documents and flat maps under one configuration.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	grammar *keypath.Grammar
	opts    options
}

// New returns a Codec configured by opts.
func New(opts ...Option) (*Codec, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	g, err := keypath.New(o.cfg)
	if err != nil {
		return nil, err
	}
	return &Codec{grammar: g, opts: o}, nil
}

// Grammar returns the key grammar of c.
func (c *Codec) Grammar() *keypath.Grammar { return c.grammar }

// Flatten returns the flat map of the tree rooted at root.
func (c *Codec) Flatten(root tree.Node) FlatMap {
	return flattener.Flatten(c.grammar, root)
}

// FlattenDocument returns the flat map of the root element of doc.
func (c *Codec) FlattenDocument(doc *etree.Document) (FlatMap, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	return c.Flatten(tree.Wrap(root)), nil
}

// FlattenBytes parses data as an XML document and flattens it.
func (c *Codec) FlattenBytes(data []byte) (FlatMap, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmlkv: parsing document: %w", err)
	}
	return c.FlattenDocument(doc)
}

// Build creates an etree document from m.
//
// Build returns ErrEmpty for an empty map and a *KeyError for the first
// key, in lexicographic order, that cannot be placed in the document. No
// document is returned on error.
func (c *Codec) Build(m FlatMap) (*etree.Document, error) {
	cont, err := c.BuildInto(m, tree.EtreeFactory{})
	if err != nil {
		return nil, err
	}
	return cont.(*tree.EtreeDocument).Document, nil
}

// BuildInto is like Build but creates the document through f.
func (c *Codec) BuildInto(m FlatMap, f tree.Factory) (tree.Container, error) {
	return builder.Build(c.grammar, m, f)
}

// Flatten parses the XML document in data and returns its flat map.
func Flatten(data []byte, opts ...Option) (FlatMap, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.FlattenBytes(data)
}

// Build creates an XML document from m.
func Build(m FlatMap, opts ...Option) (*etree.Document, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Build(m)
}
