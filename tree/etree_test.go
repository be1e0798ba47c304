package tree_test

import (
	"testing"

	"github.com/KimNorgaard/go-xmlkv/tree"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<root a="1" ns:b="2"><x>one</x><!-- note --><y><z/></y><x><![CDATA[t<o]]>wo</x></root>`)
	require.NoError(t, err)

	root := tree.Wrap(doc.Root())
	require.Equal(t, "root", root.Name())
	require.False(t, tree.IsLeaf(root))
	require.ElementsMatch(t, []tree.Attr{{Name: "a", Value: "1"}, {Name: "ns:b", Value: "2"}}, root.Attrs())

	children := root.Children()
	require.Len(t, children, 3)
	require.Equal(t, "x", children[0].Name())
	require.Equal(t, "one", children[0].Text())
	require.True(t, tree.IsLeaf(children[0]))
	require.Nil(t, children[0].Attrs())

	require.Equal(t, "y", children[1].Name())
	require.False(t, tree.IsLeaf(children[1]))
	require.True(t, tree.IsLeaf(children[1].Children()[0]))

	require.Equal(t, "t<owo", children[2].Text())
}

func TestEtreeFactory(t *testing.T) {
	c := tree.EtreeFactory{}.NewDocument()
	root := c.AppendElement("root")
	root.SetAttr("id", "7")
	item := root.AppendElement("item")
	item.SetText("a")
	root.AppendElement("item").SetText("b")

	doc, ok := c.(*tree.EtreeDocument)
	require.True(t, ok)

	s, err := doc.WriteToString()
	require.NoError(t, err)
	require.Equal(t, `<root id="7"><item>a</item><item>b</item></root>`, s)
}
