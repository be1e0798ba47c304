package tree

import (
	"strings"

	"github.com/beevik/etree"
)

type etreeNode struct {
	e *etree.Element
}

// Wrap returns the Node view of e.
func Wrap(e *etree.Element) Node {
	return etreeNode{e: e}
}

func (n etreeNode) Name() string { return n.e.FullTag() }

func (n etreeNode) Children() []Node {
	elems := n.e.ChildElements()
	if len(elems) == 0 {
		return nil
	}
	children := make([]Node, len(elems))
	for i, c := range elems {
		children[i] = etreeNode{e: c}
	}
	return children
}

func (n etreeNode) Attrs() []Attr {
	if len(n.e.Attr) == 0 {
		return nil
	}
	attrs := make([]Attr, len(n.e.Attr))
	for i := range n.e.Attr {
		attrs[i] = Attr{Name: n.e.Attr[i].FullKey(), Value: n.e.Attr[i].Value}
	}
	return attrs
}

// Text concatenates every character data token directly below the element,
// CDATA sections included.
func (n etreeNode) Text() string {
	var b strings.Builder
	for _, t := range n.e.Child {
		if cd, ok := t.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}

// EtreeFactory creates EtreeDocument containers.
type EtreeFactory struct{}

// NewDocument returns an empty *EtreeDocument.
func (EtreeFactory) NewDocument() Container {
	return &EtreeDocument{Document: etree.NewDocument()}
}

// EtreeDocument is a Container backed by an etree document.
type EtreeDocument struct {
	*etree.Document
}

// AppendElement implements Container.
func (d *EtreeDocument) AppendElement(name string) Element {
	return etreeElement{e: d.CreateElement(name)}
}

type etreeElement struct {
	e *etree.Element
}

func (el etreeElement) AppendElement(name string) Element {
	return etreeElement{e: el.e.CreateElement(name)}
}

func (el etreeElement) SetAttr(name, value string) { el.e.CreateAttr(name, value) }

func (el etreeElement) SetText(value string) { el.e.SetText(value) }
