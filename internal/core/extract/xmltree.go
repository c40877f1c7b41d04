package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/kirillkom/office-text-extractor/internal/core/domain"
)

// xmlNode is one element of a document-order XML tree. Text holds only
// the character data before the node's first child element; nested
// element text lives in Children, and trailing character data is
// dropped.
type xmlNode struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*xmlNode
}

// parseXML builds the tree for one archive entry. The returned node is a
// synthetic root whose children are the entry's top-level elements. Any
// tokenizer error other than EOF means the entry is not well formed and
// the whole parse is discarded.
func parseXML(data []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &xmlNode{}
	stack := []*xmlNode{root}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, domain.WrapError(domain.ErrParse, "parse xml", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{Name: t.Name, Attrs: copyAttrs(t.Attr)}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)
			stack = append(stack, node)
		case xml.CharData:
			top := stack[len(stack)-1]
			if len(top.Children) == 0 {
				top.Text += string(t)
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	return root, nil
}

func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}

// descendants returns every node in the subtree whose namespace URI and
// local name match, in document order.
func (n *xmlNode) descendants(space, local string) []*xmlNode {
	var out []*xmlNode
	var visit func(node *xmlNode)
	visit = func(node *xmlNode) {
		for _, child := range node.Children {
			if child.Name.Space == space && child.Name.Local == local {
				out = append(out, child)
			}
			visit(child)
		}
	}
	visit(n)
	return out
}

// child returns the first direct child matching the namespace URI and
// local name, or nil.
func (n *xmlNode) child(space, local string) *xmlNode {
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// children returns the direct children matching the namespace URI and
// local name, in document order.
func (n *xmlNode) children(space, local string) []*xmlNode {
	var out []*xmlNode
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// attr returns the value of the named unqualified attribute.
func (n *xmlNode) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}
