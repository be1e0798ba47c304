/*
Package xmlkv converts XML documents into flat key/value maps and back.

Every leaf element and every attribute of a document becomes one entry
whose key spells out the path from the root element:

	<root>
	  <child1 attr1="abc">
	    <subelement>1</subelement>
	    <subelement>2</subelement>
	  </child1>
	  <child5><active>false</active></child5>
	</root>

flattens to

	root.child1#attr1 = abc
	root.child1.subelement[1] = 1
	root.child1.subelement[2] = 2
	root.child5.active = false

Same-named siblings are numbered in document order starting at the
repetition start (1 by default); an element without same-named siblings is
never numbered. Attribute keys always carry the full path of their element.

The package offers two workflows.

1. Flattening and Building

Flatten and Build (or a reusable Codec from New) convert in both
directions. Build processes keys in sorted order, so a map always yields
the same document regardless of how it was assembled:

	m, err := xmlkv.Flatten(data)
	if err != nil {
		// handle error
	}
	doc, err := xmlkv.Build(m)
	if err != nil {
		// handle error, e.g. errors.Is(err, xmlkv.ErrEmpty)
	}

Decoder and Encoder do the same over io.Reader and io.Writer. The key
grammar is configured with functional options such as KeyDelimiter,
AttributeDelimiter, RepetitionStart and RepetitionPattern. Trees other than
etree documents can be flattened and built through the interfaces of
package tree.

2. Object Binding

Marshal, Unmarshal, ReadFile and WriteFile read and write values annotated
with encoding/xml struct tags. FlattenValue and BuildValue combine both
workflows to move a struct to and from a flat map:

	type Server struct {
		XMLName xml.Name `xml:"server"`
		Host    string   `xml:"host"`
		Port    int      `xml:"port,attr"`
	}

	m, err := xmlkv.FlattenValue(Server{Host: "localhost", Port: 8080})
	// m is {"server.host": "localhost", "server#port": "8080"}
*/
package xmlkv
