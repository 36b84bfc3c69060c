package cmdlet

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Attribute is a parameter annotation.
type Attribute interface {
	attribute()
}

// Parameter declares membership in one parameter set. A parameter carries one
// Parameter per set it belongs to.
//
// Position is zero-based, or Named. The zero value is position 0, so
// literals for named parameters should start from NewParameter.
type Parameter struct {
	// ParameterSetName is the set name; empty means AllParameterSets.
	ParameterSetName                string
	Mandatory                       bool
	Position                        int
	ValueFromPipeline               bool
	ValueFromPipelineByPropertyName bool
}

// NewParameter returns a declaration for every parameter set, bound by name.
func NewParameter() Parameter {
	return Parameter{ParameterSetName: AllParameterSets, Position: Named}
}

// SetName returns the declared set, defaulting to AllParameterSets.
func (p Parameter) SetName() string {
	if p.ParameterSetName == "" {
		return AllParameterSets
	}
	return p.ParameterSetName
}

// Alias declares alternative names for a parameter.
type Alias struct {
	Names []string
}

// SupportsWildcards marks a parameter accepting wildcard patterns.
type SupportsWildcards struct{}

func (Parameter) attribute()         {}
func (Alias) attribute()             {}
func (SupportsWildcards) attribute() {}

const (
	paramTag     = "param"
	aliasTag     = "alias"
	wildcardsTag = "wildcards"
)

// FieldAttributes parses the parameter tags on a struct field. The boolean
// reports whether the field carries a param tag at all.
func FieldAttributes(field reflect.StructField) ([]Attribute, bool, error) {
	raw, ok := field.Tag.Lookup(paramTag)
	if !ok {
		return nil, false, nil
	}
	decls, err := ParseParameterTag(raw)
	if err != nil {
		return nil, true, fmt.Errorf("field %s: %w", field.Name, err)
	}
	attrs := make([]Attribute, 0, len(decls)+2)
	for _, decl := range decls {
		attrs = append(attrs, decl)
	}
	if names, ok := field.Tag.Lookup(aliasTag); ok {
		if alias := parseAlias(names); len(alias.Names) > 0 {
			attrs = append(attrs, alias)
		}
	}
	if _, ok := field.Tag.Lookup(wildcardsTag); ok {
		attrs = append(attrs, SupportsWildcards{})
	}
	return attrs, true, nil
}

// ParseParameterTag parses a param tag value. Declarations are separated by
// ';' and options by ','. Recognized options are set=Name, mandatory,
// position=N, pipeline and pipelinebyname. An empty tag declares membership
// of every set.
func ParseParameterTag(tag string) ([]Parameter, error) {
	var decls []Parameter
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		decl, err := parseDeclaration(part)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	if len(decls) == 0 {
		decls = append(decls, NewParameter())
	}
	return decls, nil
}

func parseDeclaration(spec string) (Parameter, error) {
	decl := NewParameter()
	for _, opt := range strings.Split(spec, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, value, hasValue := strings.Cut(opt, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "set":
			if !hasValue || value == "" {
				return Parameter{}, fmt.Errorf("param option %q needs a set name", opt)
			}
			decl.ParameterSetName = value
		case "position":
			if !hasValue {
				return Parameter{}, fmt.Errorf("param option %q needs a value", opt)
			}
			if strings.EqualFold(value, "named") {
				decl.Position = Named
				continue
			}
			pos, err := strconv.Atoi(value)
			if err != nil {
				return Parameter{}, fmt.Errorf("param option %q: %w", opt, err)
			}
			decl.Position = pos
		case "mandatory", "pipeline", "pipelinebyname":
			if hasValue {
				return Parameter{}, fmt.Errorf("param option %q takes no value", key)
			}
			switch key {
			case "mandatory":
				decl.Mandatory = true
			case "pipeline":
				decl.ValueFromPipeline = true
			default:
				decl.ValueFromPipelineByPropertyName = true
			}
		default:
			return Parameter{}, fmt.Errorf("unknown param option %q", key)
		}
	}
	return decl, nil
}

func parseAlias(raw string) Alias {
	var alias Alias
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			alias.Names = append(alias.Names, name)
		}
	}
	return alias
}
