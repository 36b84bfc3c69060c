// Package comments reads documentation fragments for types, fields and
// properties. Fragments are *etree.Element values rooted at the <member>
// element of a doc-comment file; a nil fragment means no documentation.
//
// Readers are layered as decorators, outermost first:
//
//	NewCaching(NewLogging(NewRewriting(NewXMLDocReader(doc), resolver), warn))
package comments

import (
	"reflect"

	"github.com/beevik/etree"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

// Kind is the kind of a documented member.
type Kind int

const (
	TypeKind Kind = iota
	FieldKind
	PropertyKind
)

func (k Kind) prefix() string {
	switch k {
	case FieldKind:
		return "F:"
	case PropertyKind:
		return "P:"
	default:
		return "T:"
	}
}

// Member identifies a documented member. Owner is the member's declaring
// type; for a type member it is the type itself and Name is empty.
type Member struct {
	Kind  Kind
	Owner reflect.Type
	Name  string
}

// TypeMember identifies the documentation of t.
func TypeMember(t reflect.Type) Member { return Member{Kind: TypeKind, Owner: t} }

// FieldMember identifies the documentation of a struct field.
func FieldMember(owner reflect.Type, name string) Member {
	return Member{Kind: FieldKind, Owner: owner, Name: name}
}

// PropertyMember identifies the documentation of a property.
func PropertyMember(owner reflect.Type, name string) Member {
	return Member{Kind: PropertyKind, Owner: owner, Name: name}
}

// String is the fully qualified member name.
func (m Member) String() string {
	if m.Kind == TypeKind {
		return cmdlet.FullName(m.Owner)
	}
	return cmdlet.FullName(m.Owner) + "." + m.Name
}

// ID is the member id used by doc-comment files, such as
// "P:example.com/widgets.GetWidgetCommand.Name".
func (m Member) ID() string { return m.Kind.prefix() + m.String() }

// WarningFunc receives a diagnostic about a member.
type WarningFunc func(member Member, text string)

// Reader looks up documentation fragments.
type Reader interface {
	TypeComments(t reflect.Type) *etree.Element
	FieldComments(owner reflect.Type, name string) *etree.Element
	PropertyComments(owner reflect.Type, name string) *etree.Element
}

// Lookup dispatches to the Reader method matching m.Kind.
func Lookup(r Reader, m Member) *etree.Element {
	switch m.Kind {
	case FieldKind:
		return r.FieldComments(m.Owner, m.Name)
	case PropertyKind:
		return r.PropertyComments(m.Owner, m.Name)
	default:
		return r.TypeComments(m.Owner)
	}
}

// TypeResolver maps fully qualified type names to loaded types.
type TypeResolver interface {
	Lookup(fullName string) (reflect.Type, bool)
}

// TypeIndex is a TypeResolver over a fixed set of types.
type TypeIndex map[string]reflect.Type

// NewTypeIndex indexes types by cmdlet.FullName.
func NewTypeIndex(types ...reflect.Type) TypeIndex {
	idx := make(TypeIndex, len(types))
	idx.Add(types...)
	return idx
}

// Add indexes more types. Pointer types are unwrapped.
func (idx TypeIndex) Add(types ...reflect.Type) {
	for _, t := range types {
		if t == nil {
			continue
		}
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		idx[cmdlet.FullName(t)] = t
	}
}

// Lookup implements TypeResolver.
func (idx TypeIndex) Lookup(fullName string) (reflect.Type, bool) {
	t, ok := idx[fullName]
	return t, ok
}
