package comments

import (
	"reflect"

	"github.com/beevik/etree"
)

// Caching memoizes every lookup of the wrapped Reader, misses included, so
// each member reaches the inner chain at most once. It is not safe for
// concurrent use.
type Caching struct {
	inner Reader
	cache map[Member]*etree.Element
}

func NewCaching(inner Reader) *Caching {
	return &Caching{inner: inner, cache: make(map[Member]*etree.Element)}
}

func (c *Caching) TypeComments(t reflect.Type) *etree.Element {
	return c.get(TypeMember(t))
}

func (c *Caching) FieldComments(owner reflect.Type, name string) *etree.Element {
	return c.get(FieldMember(owner, name))
}

func (c *Caching) PropertyComments(owner reflect.Type, name string) *etree.Element {
	return c.get(PropertyMember(owner, name))
}

func (c *Caching) get(m Member) *etree.Element {
	if e, ok := c.cache[m]; ok {
		return e
	}
	e := Lookup(c.inner, m)
	c.cache[m] = e
	return e
}
