// Package engine runs a help generation: it loads the module and its
// documentation, renders the MAML document, writes it out and reports
// documentation warnings.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/agentflare-ai/go-cmdletdoc/cmdlet"
	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
	"github.com/agentflare-ai/go-cmdletdoc/internal/domain"
	"github.com/agentflare-ai/go-cmdletdoc/internal/maml"
)

// Options configures one run.
type Options struct {
	// ModulePath is the module plugin.
	ModulePath string
	// OutputPath defaults to ModulePath + "-Help.xml".
	OutputPath string
	// DocCommentsPath defaults to ModulePath with its extension replaced
	// by ".xml". It is ignored when SourcePattern is set.
	DocCommentsPath string
	// SourcePattern, when set, reads documentation from the doc comments
	// of the matching Go package instead of a doc-comment file.
	SourcePattern string
	// TreatWarningsAsErrors fails the run when any warning is reported.
	TreatWarningsAsErrors bool
	// ExcludedParameterSets are left out of the syntax section.
	ExcludedParameterSets []string
}

// withDefaults resolves paths to absolute form and fills in defaults.
func (o Options) withDefaults() (Options, error) {
	if o.ModulePath == "" {
		return o, errors.New("module path is required")
	}
	var err error
	if o.ModulePath, err = filepath.Abs(o.ModulePath); err != nil {
		return o, err
	}
	if o.OutputPath == "" {
		o.OutputPath = o.ModulePath + "-Help.xml"
	}
	if o.OutputPath, err = filepath.Abs(o.OutputPath); err != nil {
		return o, err
	}
	if o.SourcePattern == "" {
		if o.DocCommentsPath == "" {
			o.DocCommentsPath = strings.TrimSuffix(o.ModulePath, filepath.Ext(o.ModulePath)) + ".xml"
		}
		if o.DocCommentsPath, err = filepath.Abs(o.DocCommentsPath); err != nil {
			return o, err
		}
	}
	return o, nil
}

// Engine runs generations. It holds no per-run state, so one Engine may
// serve concurrent runs.
type Engine struct {
	logger *zap.Logger
	loader ModuleLoader
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLoader sets the module loader; the default opens Go plugins.
func WithLoader(loader ModuleLoader) Option {
	return func(e *Engine) {
		if loader != nil {
			e.loader = loader
		}
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop(), loader: PluginLoader{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateHelp runs one generation. Failures are returned as *Error
// carrying the exit code; panics are recovered as Unhandled.
func (e *Engine) GenerateHelp(ctx context.Context, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newError(Unhandled, fmt.Errorf("panic: %v", r), "unhandled failure")
		}
		if err != nil {
			e.logger.Error("help generation failed", zap.Stringer("code", ExitCodeOf(err)), zap.Error(err))
		}
	}()

	opts, err = opts.withDefaults()
	if err != nil {
		return newError(Unhandled, err, "invalid options")
	}
	e.logger.Info("generating help",
		zap.String("module", opts.ModulePath),
		zap.String("output", opts.OutputPath),
		zap.String("docComments", opts.DocCommentsPath),
		zap.String("source", opts.SourcePattern),
		zap.Bool("strict", opts.TreatWarningsAsErrors),
		zap.Strings("excludedParameterSets", opts.ExcludedParameterSets),
	)

	module, err := e.loadModule(opts.ModulePath)
	if err != nil {
		return err
	}
	doc, err := e.loadComments(ctx, opts)
	if err != nil {
		return err
	}

	result, err := Generate(module, doc, opts.ExcludedParameterSets)
	if err != nil {
		for _, cause := range multierr.Errors(err) {
			e.logger.Error("invalid command", zap.Error(cause))
		}
		return newError(Unhandled, err, "reading commands from %s", opts.ModulePath)
	}
	if err := writeDocument(opts.OutputPath, result.Document); err != nil {
		return newError(Unhandled, err, "writing %s", opts.OutputPath)
	}
	e.logger.Info("help written", zap.String("output", opts.OutputPath), zap.Int("commands", result.Commands))

	groups := result.Grouped()
	e.reportWarnings(groups)
	if opts.TreatWarningsAsErrors && len(groups) > 0 {
		return newError(WarningsAsErrors, nil, "%d members have documentation warnings", len(groups))
	}
	return nil
}

func (e *Engine) loadModule(path string) (*cmdlet.Module, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, newError(ModuleNotFound, err, "module file not found: %s", path)
	}
	module, err := e.loader.LoadModule(path)
	if err != nil {
		return nil, newError(ModuleLoadError, err, "loading module %s", path)
	}
	if module == nil {
		return nil, newError(ModuleLoadError, nil, "module %s registers no types", path)
	}
	e.logger.Debug("module loaded", zap.String("name", module.Name), zap.Strings("packages", module.Packages()))
	return module, nil
}

func (e *Engine) loadComments(ctx context.Context, opts Options) (*comments.XMLDoc, error) {
	if opts.SourcePattern != "" {
		doc, err := comments.LoadGoSource(ctx, opts.SourcePattern)
		if err != nil {
			return nil, newError(DocCommentsLoadError, err, "reading doc comments from %s", opts.SourcePattern)
		}
		e.logger.Debug("doc comments loaded", zap.String("source", opts.SourcePattern), zap.Int("members", doc.Len()))
		return doc, nil
	}
	if _, err := os.Stat(opts.DocCommentsPath); err != nil {
		return nil, newError(DocCommentsNotFound, err, "doc comments file not found: %s", opts.DocCommentsPath)
	}
	doc, err := comments.LoadXMLDoc(opts.DocCommentsPath)
	if err != nil {
		return nil, newError(DocCommentsLoadError, err, "loading doc comments")
	}
	e.logger.Debug("doc comments loaded", zap.String("path", opts.DocCommentsPath), zap.Int("members", doc.Len()))
	return doc, nil
}

func (e *Engine) reportWarnings(groups []MemberWarnings) {
	if len(groups) == 0 {
		return
	}
	e.logger.Warn("documentation warnings", zap.Int("members", len(groups)))
	for _, g := range groups {
		e.logger.Warn("incomplete documentation", zap.String("member", g.Member), zap.Strings("warnings", g.Texts))
	}
}

// Result is a rendered help document and the warnings raised for members of
// the module.
type Result struct {
	Document *etree.Document
	Commands int
	Warnings []Warning
}

// Generate renders the help for every command of module, reading
// documentation from doc.
func Generate(module *cmdlet.Module, doc *comments.XMLDoc, excludedParameterSets []string) (*Result, error) {
	cmds, err := domain.Commands(module)
	if err != nil {
		return nil, err
	}
	index := comments.NewTypeIndex(module.Types()...)
	for _, cmd := range cmds {
		index.Add(cmd.OutputTypes()...)
		for _, p := range cmd.Parameters() {
			index.Add(p.Type)
		}
	}

	log := newWarningLog(module)
	reader := comments.NewCaching(
		comments.NewLogging(
			comments.NewRewriting(comments.NewXMLDocReader(doc), index),
			log.add,
		),
	)
	gen := maml.NewGenerator(reader, log.add, excludedParameterSets)
	return &Result{
		Document: gen.Document(cmds),
		Commands: len(cmds),
		Warnings: log.warnings,
	}, nil
}

func writeDocument(path string, doc *etree.Document) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	doc.Indent(2)
	_, err = doc.WriteTo(f)
	return err
}
