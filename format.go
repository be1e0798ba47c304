package xmlkv

import (
	"encoding/xml"
	"io"

	"github.com/beevik/etree"
)

// writeDocument writes doc to w using the indentation and declaration
// settings of o. doc is re-indented in place.
func writeDocument(w io.Writer, doc *etree.Document, o *options) error {
	if o.declaration {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
	}

	if o.indent > 0 {
		doc.Indent(o.indent)
	} else {
		doc.Indent(etree.NoIndent)
	}
	_, err := doc.WriteTo(w)
	return err
}
