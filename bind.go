package xmlkv

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Marshal returns the XML encoding of v, which follows the encoding/xml
// struct tag conventions. The output is UTF-8, indented as set by the
// Indent option and preceded by an XML declaration unless disabled.
func Marshal(v any, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if o.declaration {
		buf.WriteString(xml.Header)
	}
	enc := xml.NewEncoder(&buf)
	if o.indent > 0 {
		enc.Indent("", strings.Repeat(" ", o.indent))
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("xmlkv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("xmlkv: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the XML document in data and stores the result in the
// value pointed to by v.
func Unmarshal(data []byte, v any) error {
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("xmlkv: %w", err)
	}
	return nil
}

// ReadFile reads the XML document in the named file into v.
func ReadFile(name string, v any) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// WriteFile writes the XML encoding of v to the named file, creating or
// truncating it.
func WriteFile(name string, v any, opts ...Option) error {
	data, err := Marshal(v, opts...)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

// FlattenValue returns the flat map of the XML encoding of v.
func FlattenValue(v any, opts ...Option) (FlatMap, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	data, err := Marshal(v, Indent(0), XMLDeclaration(false))
	if err != nil {
		return nil, err
	}
	return c.FlattenBytes(data)
}

// BuildValue builds a document from m and decodes it into the value
// pointed to by v.
func BuildValue(m FlatMap, v any, opts ...Option) error {
	c, err := New(opts...)
	if err != nil {
		return err
	}
	doc, err := c.Build(m)
	if err != nil {
		return err
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}
