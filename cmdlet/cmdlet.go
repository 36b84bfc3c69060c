// Package cmdlet declares the annotations a Go module uses to describe its
// shell commands: the command marker, parameter attributes, properties,
// dynamic parameters and the module registry read by go-cmdletdoc.
//
// A command is an exported struct embedding [Cmdlet]:
//
//	type GetWidgetCommand struct {
//		cmdlet.Cmdlet `verb:"Get" noun:"Widget"`
//
//		Name string `param:"mandatory,position=0" alias:"n" wildcards:""`
//		Id   int    `param:"set=ById,pipelinebyname"`
//	}
package cmdlet

import (
	"math"
	"reflect"
)

const (
	// AllParameterSets is the parameter set name matching every set.
	AllParameterSets = "__AllParameterSets"

	// Named is the position of a parameter that may only be bound by name.
	Named = math.MinInt32
)

// Cmdlet marks the embedding struct as a command. The verb and noun are read
// from the struct tags of the embedded field.
type Cmdlet struct{}

// Void is the output type of a command that writes nothing to the pipeline.
type Void struct{}

var (
	cmdletType = reflect.TypeOf(Cmdlet{})
	voidType   = reflect.TypeOf(Void{})
)

// VoidType reports the reflect.Type of [Void].
func VoidType() reflect.Type { return voidType }

// Info carries the verb and noun declared by a command's marker.
type Info struct {
	Verb string
	Noun string
}

// Name is the command name, Verb-Noun.
func (i Info) Name() string { return i.Verb + "-" + i.Noun }

// InfoOf reports the marker declared by t. Pointer types are unwrapped. The
// boolean is false when t does not embed [Cmdlet].
func InfoOf(t reflect.Type) (Info, bool) {
	if t == nil {
		return Info{}, false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Info{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous || field.Type != cmdletType {
			continue
		}
		return Info{Verb: field.Tag.Get("verb"), Noun: field.Tag.Get("noun")}, true
	}
	return Info{}, false
}

// OutputTyper is implemented by commands that declare what they write to the
// pipeline.
type OutputTyper interface {
	OutputTypes() []reflect.Type
}

// Enum is implemented by value types with a closed set of named values.
// EnumValues returns them in declaration order.
type Enum interface {
	EnumValues() []string
}

// Defaulter is implemented by commands and dynamic parameter structs that
// initialize members after allocation. Default values are read after
// SetDefaults returns.
type Defaulter interface {
	SetDefaults()
}

// PropertyDeclarer is implemented by commands exposing parameters backed by
// accessor methods. For a property named X the getter is X() and the setter
// is SetX(v). A property without a getter is write-only.
type PropertyDeclarer interface {
	Properties() []Property
}

// Property declares a parameter backed by accessor methods.
type Property struct {
	Name       string
	Attributes []Attribute
}

// DynamicParameterer is implemented by commands whose parameter list depends
// on runtime state. DynamicParameters returns a struct (or pointer to one)
// whose members carry parameter tags, or a [RuntimeParameters] value.
type DynamicParameterer interface {
	DynamicParameters() any
}

// RuntimeParameter is a parameter declared at runtime rather than through a
// struct member.
type RuntimeParameter struct {
	Name       string
	Type       reflect.Type
	Attributes []Attribute
}

// RuntimeParameters is an ordered list of runtime parameters.
type RuntimeParameters []RuntimeParameter

// Add appends a runtime parameter and returns the extended list.
func (p RuntimeParameters) Add(name string, t reflect.Type, attrs ...Attribute) RuntimeParameters {
	return append(p, RuntimeParameter{Name: name, Type: t, Attributes: attrs})
}
