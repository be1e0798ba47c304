package xmlkv_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-xmlkv"
	"github.com/KimNorgaard/go-xmlkv/internal/testutil"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func FuzzRoundTrip(f *testing.F) {
	for _, name := range testutil.Fixtures(".xml") {
		f.Add(testutil.Fixture(f, name))
	}

	f.Add([]byte("<a/>"))
	f.Add([]byte(`<a x="1"/>`))
	f.Add([]byte("<a><b>1</b><b>2</b><c><b>3</b></c></a>"))
	f.Add([]byte("<a><b><![CDATA[<x>]]></b></a>"))

	f.Fuzz(func(t *testing.T, data []byte) {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
			return
		}
		// Names containing the key delimiter cannot be told apart from
		// nesting, so such documents do not round-trip by construction.
		if namesContain(doc.Root(), ".") {
			return
		}

		c, err := xmlkv.New()
		require.NoError(t, err)

		m1, err := c.FlattenDocument(doc)
		require.NoError(t, err)

		built, err := c.Build(m1)
		require.NoError(t, err, "Build failed on a flattened document")

		m2, err := c.FlattenDocument(built)
		require.NoError(t, err)
		require.Equal(t, m1, m2, "Flat map changed after a build/flatten round trip")
	})
}

func namesContain(e *etree.Element, s string) bool {
	if strings.Contains(e.FullTag(), s) {
		return true
	}
	for _, a := range e.Attr {
		if strings.Contains(a.FullKey(), s) {
			return true
		}
	}
	for _, c := range e.ChildElements() {
		if namesContain(c, s) {
			return true
		}
	}
	return false
}
