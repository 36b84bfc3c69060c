package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agentflare-ai/go-cmdletdoc/internal/comments"
	"github.com/agentflare-ai/go-cmdletdoc/internal/config"
	"github.com/agentflare-ai/go-cmdletdoc/internal/engine"
)

type options struct {
	configPath      string
	outputPath      string
	docCommentsPath string
	sourcePattern   string
	excludedSets    []string
	strict          bool
	verbose         bool
}

type cliApp struct {
	stdout     io.Writer
	opts       options
	engineOpts []engine.Option
}

func run(argv []string, stdout io.Writer, engineOpts ...engine.Option) error {
	cmd := newRootCmd(stdout, engineOpts...)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, flags *pflag.FlagSet, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(positionals) != 1 {
		return errors.New("exactly one module path is required")
	}
	opts, err := app.mergeConfig(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	e := engine.New(append([]engine.Option{engine.WithLogger(logger)}, app.engineOpts...)...)
	return e.GenerateHelp(ctx, engine.Options{
		ModulePath:            positionals[0],
		OutputPath:            opts.outputPath,
		DocCommentsPath:       opts.docCommentsPath,
		SourcePattern:         opts.sourcePattern,
		TreatWarningsAsErrors: opts.strict,
		ExcludedParameterSets: opts.excludedSets,
	})
}

// mergeConfig fills every option not set on the command line from the
// config file.
func (app *cliApp) mergeConfig(flags *pflag.FlagSet) (options, error) {
	opts := app.opts
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return opts, err
	}
	if !flags.Changed("strict") && cfg.Strict {
		opts.strict = true
	}
	if !flags.Changed("verbose") && cfg.Verbose {
		opts.verbose = true
	}
	if !flags.Changed("exclude-parameter-sets") && len(cfg.ExcludeParameterSets) > 0 {
		opts.excludedSets = cfg.ExcludeParameterSets
	}
	if !flags.Changed("output") && cfg.Output != "" {
		opts.outputPath = cfg.Path(cfg.Output)
	}
	if !flags.Changed("doc-comments") && cfg.DocComments != "" {
		opts.docCommentsPath = cfg.Path(cfg.DocComments)
	}
	if !flags.Changed("source") && cfg.Source != "" {
		opts.sourcePattern = cfg.Source
		if strings.HasPrefix(cfg.Source, ".") {
			opts.sourcePattern = cfg.Path(cfg.Source)
		}
	}
	opts.excludedSets = trimSets(opts.excludedSets)
	return opts, nil
}

func trimSets(sets []string) []string {
	out := sets[:0:0]
	for _, s := range sets {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// writeXMLDoc writes the doc-comment file for the Go package matching
// pattern.
func writeXMLDoc(ctx context.Context, pattern, path string, stdout io.Writer) error {
	doc, err := comments.LoadGoSource(ctx, pattern)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeOutput(path, stdout, buf.Bytes())
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// legacyLongFlags maps single-dash long flags to their double-dash form.
var legacyLongFlags = map[string]string{
	"strict":                 "strict",
	"excludeParameterSets":   "exclude-parameter-sets",
	"exclude-parameter-sets": "exclude-parameter-sets",
	"output":                 "output",
	"doc-comments":           "doc-comments",
	"source":                 "source",
	"config":                 "config",
	"verbose":                "verbose",
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			if name, ok := legacyLongFlags[arg[1:idx]]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		if name, ok := legacyLongFlags[arg[1:]]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}
