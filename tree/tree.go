// Package tree defines the document tree capabilities the flattener and
// the builder rely on, independent of any concrete XML representation.
//
// The flattener reads a tree through Node. The builder creates one through
// a Factory: it asks for a fresh document container and then appends
// elements, sets attributes and sets text. An implementation backed by
// github.com/beevik/etree is provided by Wrap and EtreeFactory.
package tree

// Attr is a single attribute of an element.
type Attr struct {
	Name  string
	Value string
}

// Node is a read-only view of an element.
type Node interface {
	// Name returns the element name as written in the document.
	Name() string
	// Children returns the child elements in document order.
	Children() []Node
	// Attrs returns the attributes of the element. Their order carries no
	// meaning.
	Attrs() []Attr
	// Text returns the character data of the element.
	Text() string
}

// IsLeaf reports whether n has no child elements.
func IsLeaf(n Node) bool {
	return len(n.Children()) == 0
}

// Container is anything elements can be appended to: a document or an
// element.
type Container interface {
	// AppendElement creates an element called name and appends it as the
	// last child of the container.
	AppendElement(name string) Element
}

// Element is a writable element.
type Element interface {
	Container
	SetAttr(name, value string)
	SetText(value string)
}

// Factory creates empty documents.
type Factory interface {
	NewDocument() Container
}
