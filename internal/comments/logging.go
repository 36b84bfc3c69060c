package comments

import (
	"reflect"

	"github.com/beevik/etree"
)

// MissingComment is reported for members without a fragment.
const MissingComment = "No XML doc comment found."

// Logging reports a warning for every lookup that yields no fragment.
type Logging struct {
	inner Reader
	warn  WarningFunc
}

func NewLogging(inner Reader, warn WarningFunc) *Logging {
	return &Logging{inner: inner, warn: warn}
}

func (l *Logging) TypeComments(t reflect.Type) *etree.Element {
	return l.check(TypeMember(t), l.inner.TypeComments(t))
}

func (l *Logging) FieldComments(owner reflect.Type, name string) *etree.Element {
	return l.check(FieldMember(owner, name), l.inner.FieldComments(owner, name))
}

func (l *Logging) PropertyComments(owner reflect.Type, name string) *etree.Element {
	return l.check(PropertyMember(owner, name), l.inner.PropertyComments(owner, name))
}

func (l *Logging) check(m Member, e *etree.Element) *etree.Element {
	if e == nil && l.warn != nil {
		l.warn(m, MissingComment)
	}
	return e
}
