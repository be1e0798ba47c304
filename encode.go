package xmlkv

import (
	"io"
)

// Encoder builds XML documents from flat maps and writes them to an output
// stream.
type Encoder struct {
	w    io.Writer
	opts []Option
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode builds the document described by m and writes it to the stream.
// Nothing is written when the build fails.
func (e *Encoder) Encode(m FlatMap) error {
	c, err := New(e.opts...)
	if err != nil {
		return err
	}
	doc, err := c.Build(m)
	if err != nil {
		return err
	}
	return writeDocument(e.w, doc, &c.opts)
}
