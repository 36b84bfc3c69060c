// Package domain models the commands of a module and their parameters as
// discovered through reflection.
package domain

import (
	"fmt"
	"go/token"
	"reflect"
	"sort"

	"go.uber.org/multierr"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

// Command is a documented command type.
type Command struct {
	Type reflect.Type
	Verb string
	Noun string

	outputTypes []reflect.Type
	parameters  []*Parameter
}

// NewCommand reflects over t, which must embed cmdlet.Cmdlet with a verb and
// a noun. Malformed parameter declarations are reported together.
func NewCommand(t reflect.Type) (*Command, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	info, ok := cmdlet.InfoOf(t)
	if !ok {
		return nil, fmt.Errorf("%s: type does not embed cmdlet.Cmdlet", cmdlet.FullName(t))
	}
	if info.Verb == "" || info.Noun == "" {
		return nil, fmt.Errorf("%s: cmdlet marker needs both a verb and a noun", cmdlet.FullName(t))
	}
	params, err := commandParameters(t)
	if err != nil {
		return nil, err
	}
	return &Command{
		Type:        t,
		Verb:        info.Verb,
		Noun:        info.Noun,
		outputTypes: outputTypes(t),
		parameters:  params,
	}, nil
}

// Commands builds every exported command type registered with m, ordered by
// full type name.
func Commands(m *cmdlet.Module) ([]*Command, error) {
	var types []reflect.Type
	for _, t := range m.Types() {
		if t.Kind() != reflect.Struct || !token.IsExported(t.Name()) {
			continue
		}
		if _, ok := cmdlet.InfoOf(t); ok {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		return cmdlet.FullName(types[i]) < cmdlet.FullName(types[j])
	})

	var (
		cmds []*Command
		errs error
	)
	for _, t := range types {
		cmd, err := NewCommand(t)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if errs != nil {
		return nil, errs
	}
	return cmds, nil
}

// Name is Verb-Noun.
func (c *Command) Name() string { return c.Verb + "-" + c.Noun }

// OutputTypes returns the distinct declared output types sorted by full name.
func (c *Command) OutputTypes() []reflect.Type { return c.outputTypes }

// Parameters returns every parameter: reflected members first, then dynamic
// parameters.
func (c *Command) Parameters() []*Parameter { return c.parameters }

// GetParameters returns the parameters belonging to set. AllParameterSets
// selects every parameter.
func (c *Command) GetParameters(set string) []*Parameter {
	if set == cmdlet.AllParameterSets {
		return c.parameters
	}
	var out []*Parameter
	for _, p := range c.parameters {
		if len(p.Attributes(set)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// ParameterSetNames returns the distinct set names across all parameters in
// first-seen order.
func (c *Command) ParameterSetNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range c.parameters {
		for _, name := range p.ParameterSetNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func outputTypes(t reflect.Type) []reflect.Type {
	typer, ok := reflect.New(t).Interface().(cmdlet.OutputTyper)
	if !ok {
		return nil
	}
	byName := make(map[string]reflect.Type)
	for _, ot := range typer.OutputTypes() {
		if ot != nil {
			byName[cmdlet.FullName(ot)] = ot
		}
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]reflect.Type, len(names))
	for i, name := range names {
		out[i] = byName[name]
	}
	return out
}

func commandParameters(t reflect.Type) ([]*Parameter, error) {
	params, errs := reflectParameters(t)

	dyn, ok := newInstance(t).Interface().(cmdlet.DynamicParameterer)
	if !ok {
		return params, errs
	}
	switch v := dyn.DynamicParameters().(type) {
	case nil:
	case cmdlet.RuntimeParameters:
		rt, err := runtimeParameters(t, v)
		params = append(params, rt...)
		errs = multierr.Append(errs, err)
	case []cmdlet.RuntimeParameter:
		rt, err := runtimeParameters(t, v)
		params = append(params, rt...)
		errs = multierr.Append(errs, err)
	default:
		dt := reflect.TypeOf(v)
		for dt.Kind() == reflect.Pointer {
			dt = dt.Elem()
		}
		if dt.Kind() != reflect.Struct {
			errs = multierr.Append(errs, fmt.Errorf("%s: dynamic parameters must be a struct or cmdlet.RuntimeParameters, got %s", cmdlet.FullName(t), dt))
			break
		}
		nested, err := reflectParameters(dt)
		params = append(params, nested...)
		errs = multierr.Append(errs, err)
	}
	return params, errs
}
