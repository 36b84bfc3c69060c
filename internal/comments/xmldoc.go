package comments

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/beevik/etree"
)

// XMLDoc is an index of <member> elements keyed by member id, in the layout
// of a .NET doc-comment file:
//
//	<doc>
//	  <assembly><name>widgets</name></assembly>
//	  <members>
//	    <member name="T:example.com/widgets.GetWidgetCommand">...</member>
//	  </members>
//	</doc>
type XMLDoc struct {
	doc     *etree.Document
	members *etree.Element
	index   map[string]*etree.Element
}

// NewXMLDoc returns an empty index for the named assembly.
func NewXMLDoc(assembly string) *XMLDoc {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("doc")
	root.CreateElement("assembly").CreateElement("name").SetText(assembly)
	return &XMLDoc{
		doc:     doc,
		members: root.CreateElement("members"),
		index:   make(map[string]*etree.Element),
	}
}

// LoadXMLDoc reads a doc-comment file from disk.
func LoadXMLDoc(path string) (*XMLDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := ParseXMLDoc(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseXMLDoc reads a doc-comment document.
func ParseXMLDoc(r io.Reader) (*XMLDoc, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil || root.Tag != "doc" {
		return nil, errors.New("missing <doc> root element")
	}
	members := root.SelectElement("members")
	if members == nil {
		members = root.CreateElement("members")
	}
	d := &XMLDoc{doc: doc, members: members, index: make(map[string]*etree.Element)}
	for _, member := range members.SelectElements("member") {
		d.indexMember(member)
	}
	return d, nil
}

// Assembly returns the assembly name recorded in the document.
func (d *XMLDoc) Assembly() string {
	if name := d.doc.FindElement("/doc/assembly/name"); name != nil {
		return name.Text()
	}
	return ""
}

// Add appends a member element. The element's name attribute is set to id.
func (d *XMLDoc) Add(id string, member *etree.Element) {
	member.Tag = "member"
	member.Space = ""
	member.CreateAttr("name", id)
	d.members.AddChild(member)
	d.indexMember(member)
}

func (d *XMLDoc) indexMember(member *etree.Element) {
	id := member.SelectAttrValue("name", "")
	if id == "" {
		return
	}
	if _, ok := d.index[id]; ok {
		return
	}
	d.index[id] = member
}

// Member returns the element for id, or nil.
func (d *XMLDoc) Member(id string) *etree.Element {
	return d.index[id]
}

// Len reports the number of indexed members.
func (d *XMLDoc) Len() int { return len(d.index) }

// WriteTo writes the document, indented with two spaces.
func (d *XMLDoc) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// XMLDocReader is the Reader backed directly by an XMLDoc. Fragments are
// returned as stored; callers that mutate them must copy first.
type XMLDocReader struct {
	doc *XMLDoc
}

// NewXMLDocReader adapts doc to the Reader interface.
func NewXMLDocReader(doc *XMLDoc) *XMLDocReader {
	return &XMLDocReader{doc: doc}
}

func (r *XMLDocReader) TypeComments(t reflect.Type) *etree.Element {
	return r.doc.Member(TypeMember(t).ID())
}

func (r *XMLDocReader) FieldComments(owner reflect.Type, name string) *etree.Element {
	return r.doc.Member(FieldMember(owner, name).ID())
}

func (r *XMLDocReader) PropertyComments(owner reflect.Type, name string) *etree.Element {
	return r.doc.Member(PropertyMember(owner, name).ID())
}
