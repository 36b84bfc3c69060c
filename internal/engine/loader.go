package engine

import (
	"fmt"
	"plugin"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
)

// ModuleSymbol is the exported variable a module plugin must define.
const ModuleSymbol = "Module"

// ModuleLoader loads the module at path.
type ModuleLoader interface {
	LoadModule(path string) (*cmdlet.Module, error)
}

// ModuleLoaderFunc adapts a function to ModuleLoader.
type ModuleLoaderFunc func(path string) (*cmdlet.Module, error)

func (f ModuleLoaderFunc) LoadModule(path string) (*cmdlet.Module, error) { return f(path) }

// PluginLoader opens modules built with -buildmode=plugin that export
//
//	var Module = cmdlet.NewModule(...)
type PluginLoader struct{}

func (PluginLoader) LoadModule(path string) (*cmdlet.Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(ModuleSymbol)
	if err != nil {
		return nil, err
	}
	switch m := sym.(type) {
	case **cmdlet.Module:
		if *m == nil {
			return nil, fmt.Errorf("%s is nil", ModuleSymbol)
		}
		return *m, nil
	case *cmdlet.Module:
		return m, nil
	default:
		return nil, fmt.Errorf("%s has type %T, want *cmdlet.Module", ModuleSymbol, sym)
	}
}
