package cmdlet

import (
	"reflect"
	"sort"
)

// Module is a named registry of the types a Go module exposes for
// documentation. A plugin build of the module exports it as
//
//	var Module = cmdlet.NewModule("widgets", GetWidgetCommand{}, Widget{})
type Module struct {
	Name string

	types  []reflect.Type
	byName map[string]reflect.Type
}

// NewModule registers values with a module. Each value is either a
// reflect.Type or a value (or pointer) of the type to register.
func NewModule(name string, values ...any) *Module {
	m := &Module{Name: name, byName: make(map[string]reflect.Type)}
	for _, v := range values {
		m.Register(v)
	}
	return m
}

// Register adds the type of v to the module. Registering a type twice is a
// no-op.
func (m *Module) Register(v any) {
	var t reflect.Type
	switch v := v.(type) {
	case nil:
		return
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(v)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := FullName(t)
	if _, ok := m.byName[name]; ok {
		return
	}
	if m.byName == nil {
		m.byName = make(map[string]reflect.Type)
	}
	m.byName[name] = t
	m.types = append(m.types, t)
}

// Types returns the registered types in registration order.
func (m *Module) Types() []reflect.Type {
	out := make([]reflect.Type, len(m.types))
	copy(out, m.types)
	return out
}

// Lookup resolves a fully qualified type name.
func (m *Module) Lookup(fullName string) (reflect.Type, bool) {
	t, ok := m.byName[fullName]
	return t, ok
}

// Packages returns the distinct import paths of the registered types, sorted.
func (m *Module) Packages() []string {
	seen := make(map[string]struct{})
	var pkgs []string
	for _, t := range m.types {
		path := t.PkgPath()
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		pkgs = append(pkgs, path)
	}
	sort.Strings(pkgs)
	return pkgs
}

// Owns reports whether t is declared in one of the module's packages.
func (m *Module) Owns(t reflect.Type) bool {
	if t == nil {
		return false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	path := t.PkgPath()
	if path == "" {
		return false
	}
	for _, pkg := range m.Packages() {
		if pkg == path {
			return true
		}
	}
	return false
}

// FullName returns the import-path qualified name of t, such as
// "example.com/widgets.Widget". Unnamed types use their Go syntax.
func FullName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// ShortName returns the unqualified name of t.
func ShortName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
