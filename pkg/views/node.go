package views

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// attr is a key/value pair for element helpers.
type attr struct {
	key, val string
}

func a(key, val string) attr { return attr{key, val} }

// el builds an element node with attributes and children.
func el(tag string, attrs []attr, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, at := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: at.key, Val: at.val})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// raw inserts pre-rendered markup verbatim.
func raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

func attrs(as ...attr) []attr { return as }
