package domain

import (
	"fmt"
	"reflect"
	"strconv"

	"go.uber.org/multierr"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
)

// DefaultValueWarning is reported for write-only properties.
const DefaultValueWarning = "Parameter does not have a getter. Unable to determine its default value"

// Pipeline input descriptions.
const (
	PipelineNone   = "false"
	PipelineValue  = "true (ByValue)"
	PipelineByName = "true (ByPropertyName)"
	PipelineBoth   = "true (ByValue, ByPropertyName)"
)

// Parameter is a command parameter, backed either by a struct member
// (field or accessor property) or by a runtime declaration.
type Parameter struct {
	// Name is the parameter name.
	Name string
	// Owner is the type whose documentation describes the parameter.
	Owner reflect.Type
	// Type is the declared value type with any pointer unwrapped.
	Type reflect.Type
	// Kind is the member kind used for documentation lookups.
	Kind comments.Kind

	attrs  []cmdlet.Attribute
	source source
}

// source is the closed set of parameter backings.
type source interface {
	source()
}

// fieldSource reads a struct field of a fresh root instance.
type fieldSource struct {
	root  reflect.Type
	index []int
}

// propertySource calls the getter of a fresh root instance.
type propertySource struct {
	root      reflect.Type
	hasGetter bool
}

// runtimeSource is a runtime-declared parameter.
type runtimeSource struct{}

func (fieldSource) source()    {}
func (propertySource) source() {}
func (runtimeSource) source()  {}

// Member identifies the parameter's documentation.
func (p *Parameter) Member() comments.Member {
	return comments.Member{Kind: p.Kind, Owner: p.Owner, Name: p.Name}
}

// IsRuntime reports whether the parameter was declared at runtime.
func (p *Parameter) IsRuntime() bool {
	_, ok := p.source.(runtimeSource)
	return ok
}

// Declarations returns every set declaration in declaration order.
func (p *Parameter) Declarations() []cmdlet.Parameter {
	return declarations(p.attrs)
}

// Attributes returns the declarations matching set. AllParameterSets
// matches every declaration; any other set matches its own declarations and
// those for AllParameterSets.
func (p *Parameter) Attributes(set string) []cmdlet.Parameter {
	var out []cmdlet.Parameter
	for _, decl := range p.Declarations() {
		name := decl.SetName()
		if set == cmdlet.AllParameterSets || name == set || name == cmdlet.AllParameterSets {
			out = append(out, decl)
		}
	}
	return out
}

// ParameterSetNames returns the distinct declared set names in first-seen
// order.
func (p *Parameter) ParameterSetNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, decl := range p.Declarations() {
		if name := decl.SetName(); !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// IsRequired reports whether any declaration matching set is mandatory.
func (p *Parameter) IsRequired(set string) bool {
	for _, decl := range p.Attributes(set) {
		if decl.Mandatory {
			return true
		}
	}
	return false
}

// IsPipeline reports whether any declaration matching set accepts pipeline
// input.
func (p *Parameter) IsPipeline(set string) bool {
	return p.PipelineInput(set) != PipelineNone
}

// PipelineInput describes pipeline binding across the declarations
// matching set.
func (p *Parameter) PipelineInput(set string) string {
	var byValue, byName bool
	for _, decl := range p.Attributes(set) {
		byValue = byValue || decl.ValueFromPipeline
		byName = byName || decl.ValueFromPipelineByPropertyName
	}
	switch {
	case byValue && byName:
		return PipelineBoth
	case byValue:
		return PipelineValue
	case byName:
		return PipelineByName
	default:
		return PipelineNone
	}
}

// Position returns the position of the first declaration matching set,
// "named" for name-only binding. The boolean is false when no declaration
// matches.
func (p *Parameter) Position(set string) (string, bool) {
	decls := p.Attributes(set)
	if len(decls) == 0 {
		return "", false
	}
	if decls[0].Position == cmdlet.Named {
		return "named", true
	}
	return strconv.Itoa(decls[0].Position), true
}

// Aliases returns the declared aliases in declaration order.
func (p *Parameter) Aliases() []string {
	var names []string
	for _, attr := range p.attrs {
		if alias, ok := attr.(cmdlet.Alias); ok {
			names = append(names, alias.Names...)
		}
	}
	return names
}

// SupportsWildcards reports whether the parameter accepts wildcards. Runtime
// parameters never do.
func (p *Parameter) SupportsWildcards() bool {
	if p.IsRuntime() {
		return false
	}
	for _, attr := range p.attrs {
		if _, ok := attr.(cmdlet.SupportsWildcards); ok {
			return true
		}
	}
	return false
}

var enumType = reflect.TypeOf((*cmdlet.Enum)(nil)).Elem()

// EnumValues returns the value names when the value type, or its element
// type for slices and arrays, is an enumeration.
func (p *Parameter) EnumValues() []string {
	t := p.Type
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	switch {
	case t.Implements(enumType):
		return reflect.Zero(t).Interface().(cmdlet.Enum).EnumValues()
	case reflect.PointerTo(t).Implements(enumType):
		return reflect.New(t).Interface().(cmdlet.Enum).EnumValues()
	}
	return nil
}

// DefaultValue instantiates the owning type and reads the member. The
// boolean is false when no value can be determined; write-only properties
// also report DefaultValueWarning through warn.
func (p *Parameter) DefaultValue(warn comments.WarningFunc) (any, bool) {
	switch src := p.source.(type) {
	case fieldSource:
		v, err := newInstance(src.root).Elem().FieldByIndexErr(src.index)
		if err != nil || !v.CanInterface() {
			return nil, false
		}
		return v.Interface(), true
	case propertySource:
		if !src.hasGetter {
			if warn != nil {
				warn(p.Member(), DefaultValueWarning)
			}
			return nil, false
		}
		out := newInstance(src.root).MethodByName(p.Name).Call(nil)
		return out[0].Interface(), true
	default:
		return nil, false
	}
}

// newInstance allocates t and applies its defaults.
func newInstance(t reflect.Type) reflect.Value {
	inst := reflect.New(t)
	if d, ok := inst.Interface().(cmdlet.Defaulter); ok {
		d.SetDefaults()
	}
	return inst
}

func declarations(attrs []cmdlet.Attribute) []cmdlet.Parameter {
	var decls []cmdlet.Parameter
	for _, attr := range attrs {
		if decl, ok := attr.(cmdlet.Parameter); ok {
			decls = append(decls, decl)
		}
	}
	return decls
}

func valueType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// reflectParameters collects the field and property parameters of root.
func reflectParameters(root reflect.Type) ([]*Parameter, error) {
	var (
		params []*Parameter
		errs   error
	)
	for _, field := range reflect.VisibleFields(root) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		attrs, ok, err := cmdlet.FieldAttributes(field)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", cmdlet.FullName(root), err))
			continue
		}
		if !ok {
			continue
		}
		params = append(params, &Parameter{
			Name:   field.Name,
			Owner:  declaringType(root, field.Index),
			Type:   valueType(field.Type),
			Kind:   comments.FieldKind,
			attrs:  attrs,
			source: fieldSource{root: root, index: field.Index},
		})
	}

	props, err := propertyParameters(root)
	errs = multierr.Append(errs, err)
	return append(params, props...), errs
}

func propertyParameters(root reflect.Type) ([]*Parameter, error) {
	declarer, ok := reflect.New(root).Interface().(cmdlet.PropertyDeclarer)
	if !ok {
		return nil, nil
	}
	var (
		params []*Parameter
		errs   error
	)
	ptr := reflect.PointerTo(root)
	for _, prop := range declarer.Properties() {
		if len(declarations(prop.Attributes)) == 0 {
			continue
		}
		getter, hasGetter := ptr.MethodByName(prop.Name)
		setter, hasSetter := ptr.MethodByName("Set" + prop.Name)
		var typ reflect.Type
		switch {
		case hasGetter:
			if getter.Type.NumIn() != 1 || getter.Type.NumOut() != 1 {
				errs = multierr.Append(errs, fmt.Errorf("%s: property %s: getter must take no arguments and return one value", cmdlet.FullName(root), prop.Name))
				continue
			}
			typ = getter.Type.Out(0)
		case hasSetter:
			if setter.Type.NumIn() != 2 {
				errs = multierr.Append(errs, fmt.Errorf("%s: property %s: setter must take one argument", cmdlet.FullName(root), prop.Name))
				continue
			}
			typ = setter.Type.In(1)
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: property %s has no accessor methods", cmdlet.FullName(root), prop.Name))
			continue
		}
		params = append(params, &Parameter{
			Name:   prop.Name,
			Owner:  root,
			Type:   valueType(typ),
			Kind:   comments.PropertyKind,
			attrs:  prop.Attributes,
			source: propertySource{root: root, hasGetter: hasGetter},
		})
	}
	return params, errs
}

func runtimeParameters(owner reflect.Type, defs []cmdlet.RuntimeParameter) ([]*Parameter, error) {
	var (
		params []*Parameter
		errs   error
	)
	for _, def := range defs {
		if len(declarations(def.Attributes)) == 0 {
			continue
		}
		if def.Name == "" || def.Type == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: runtime parameter %q needs a name and a type", cmdlet.FullName(owner), def.Name))
			continue
		}
		params = append(params, &Parameter{
			Name:   def.Name,
			Owner:  owner,
			Type:   valueType(def.Type),
			Kind:   comments.PropertyKind,
			attrs:  def.Attributes,
			source: runtimeSource{},
		})
	}
	return params, errs
}

// declaringType follows an embedding index path to the struct declaring the
// final field.
func declaringType(root reflect.Type, index []int) reflect.Type {
	t := root
	for _, i := range index[:len(index)-1] {
		t = t.Field(i).Type
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}
	return t
}
