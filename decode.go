package xmlkv

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// Decoder reads XML documents from an input stream and flattens them.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// It is the caller's responsibility to call Close on r if required.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads one XML document from its input and returns the flat map of
// its root element.
//
// Note: This is a non-streaming implementation. The whole document is
// parsed into memory first.
func (d *Decoder) Decode() (FlatMap, error) {
	if d.r == nil {
		return nil, fmt.Errorf("xmlkv: Decode(nil reader)")
	}
	c, err := New(d.opts...)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(d.r); err != nil {
		return nil, fmt.Errorf("xmlkv: parsing document: %w", err)
	}
	return c.FlattenDocument(doc)
}
