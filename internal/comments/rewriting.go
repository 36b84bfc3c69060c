package comments

import (
	"reflect"
	"strings"

	"github.com/beevik/etree"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

// Rewriting replaces <see cref="..."/> markers in fragments with plain text.
// Fragments from the inner Reader are copied before they are modified.
type Rewriting struct {
	inner Reader
	types TypeResolver
}

// NewRewriting wraps inner. types resolves "T:" references to loaded types
// and may be nil.
func NewRewriting(inner Reader, types TypeResolver) *Rewriting {
	return &Rewriting{inner: inner, types: types}
}

func (r *Rewriting) TypeComments(t reflect.Type) *etree.Element {
	return r.rewrite(r.inner.TypeComments(t))
}

func (r *Rewriting) FieldComments(owner reflect.Type, name string) *etree.Element {
	return r.rewrite(r.inner.FieldComments(owner, name))
}

func (r *Rewriting) PropertyComments(owner reflect.Type, name string) *etree.Element {
	return r.rewrite(r.inner.PropertyComments(owner, name))
}

func (r *Rewriting) rewrite(fragment *etree.Element) *etree.Element {
	if fragment == nil {
		return nil
	}
	root := detachedCopy(fragment)
	stack := root.ChildElements()
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.Tag == "see" {
			if cref := e.SelectAttr("cref"); cref != nil {
				text := InnerText(e)
				if strings.TrimSpace(text) == "" {
					text = r.crefText(cref.Value)
				}
				// A reference with nothing to show stays as it is.
				if strings.TrimSpace(text) == "" {
					continue
				}
				parent := e.Parent()
				i := e.Index()
				parent.RemoveChildAt(i)
				parent.InsertChildAt(i, etree.NewText(text))
				continue
			}
		}
		stack = append(stack, e.ChildElements()...)
	}
	return root
}

// detachedCopy deep-copies e and re-declares the namespaces it inherited
// from its ancestors, so prefixes still resolve once it is detached.
func detachedCopy(e *etree.Element) *etree.Element {
	out := e.Copy()
	for p := e.Parent(); p != nil; p = p.Parent() {
		for _, a := range p.Attr {
			if a.Space != "xmlns" && !(a.Space == "" && a.Key == "xmlns") {
				continue
			}
			if out.SelectAttr(a.FullKey()) == nil {
				out.CreateAttr(a.FullKey(), a.Value)
			}
		}
	}
	return out
}

// crefText renders a cross reference such as "T:example.com/widgets.Widget".
// Command types render as their command name and other resolved types as
// their short name; anything else keeps the text after the last period.
func (r *Rewriting) crefText(cref string) string {
	if strings.HasPrefix(cref, "T:") && r.types != nil {
		if t, ok := r.types.Lookup(cref[2:]); ok {
			if info, ok := cmdlet.InfoOf(t); ok {
				return info.Name()
			}
			return cmdlet.ShortName(t)
		}
	}
	if i := strings.LastIndex(cref, "."); i >= 0 {
		return cref[i+1:]
	}
	if len(cref) > 2 && cref[1] == ':' {
		return cref[2:]
	}
	return cref
}

// InnerText concatenates the character data of e and its descendants in
// document order.
func InnerText(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	appendText(&b, e)
	return b.String()
}

func appendText(b *strings.Builder, e *etree.Element) {
	for _, tok := range e.Child {
		switch tok := tok.(type) {
		case *etree.CharData:
			b.WriteString(tok.Data)
		case *etree.Element:
			appendText(b, tok)
		}
	}
}
