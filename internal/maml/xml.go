package maml

import "github.com/beevik/etree"

// Namespaces of the help document.
const (
	MshNS     = "http://msh"
	MamlNS    = "http://schemas.microsoft.com/maml/2004/10"
	CommandNS = "http://schemas.microsoft.com/maml/dev/command/2004/10"
	DevNS     = "http://schemas.microsoft.com/maml/dev/2004/10"
)

var prefixes = map[string]string{
	MamlNS:    "maml",
	CommandNS: "command",
	DevNS:     "dev",
}

type matcher func(*etree.Element) bool

// plain matches unqualified elements named local.
func plain(local string) matcher {
	return func(e *etree.Element) bool {
		return e.Tag == local && e.NamespaceURI() == ""
	}
}

// qualified matches elements named local in namespace ns.
func qualified(ns, local string) matcher {
	return func(e *etree.Element) bool {
		return e.Tag == local && e.NamespaceURI() == ns
	}
}

// typed narrows m to elements whose type attribute equals kind.
func typed(m matcher, kind string) matcher {
	return func(e *etree.Element) bool {
		return m(e) && e.SelectAttrValue("type", "") == kind
	}
}

// descendants returns the elements below root matching m, in document order.
func descendants(root *etree.Element, m matcher) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if m(child) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

func firstDescendant(root *etree.Element, m matcher) *etree.Element {
	if found := descendants(root, m); len(found) > 0 {
		return found[0]
	}
	return nil
}

func children(e *etree.Element, m matcher) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if m(child) {
			out = append(out, child)
		}
	}
	return out
}

// adopt deep-copies e for the help document. Elements in the help
// namespaces get their canonical prefixes and namespace declarations are
// dropped, since the command element declares them. The attributes of e
// itself are copied only when keepAttrs is set.
func adopt(e *etree.Element, keepAttrs bool) *etree.Element {
	out := etree.NewElement(e.Tag)
	out.Space = e.Space
	if prefix, ok := prefixes[e.NamespaceURI()]; ok {
		out.Space = prefix
	}
	if keepAttrs {
		for _, a := range e.Attr {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				continue
			}
			out.CreateAttr(a.FullKey(), a.Value)
		}
	}
	for _, tok := range e.Child {
		switch tok := tok.(type) {
		case *etree.Element:
			out.AddChild(adopt(tok, true))
		case *etree.CharData:
			if tok.IsCData() {
				out.CreateCData(tok.Data)
			} else {
				out.CreateText(tok.Data)
			}
		}
	}
	return out
}

func addChild(parent, child *etree.Element) {
	if child != nil {
		parent.AddChild(child)
	}
}

func textElement(tag, text string) *etree.Element {
	e := etree.NewElement(tag)
	e.SetText(text)
	return e
}
