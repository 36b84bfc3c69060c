package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-cmdletdoc/internal/engine"
)

const rootLongDesc = `
go-cmdletdoc generates MAML help files for command modules.

It loads a module plugin, reflects over the commands it registers and
combines their structure with XML doc comments into a <module>-Help.xml file
that PowerShell-style help viewers understand. Documentation comes from a
doc-comment file next to the module, or straight from the Go source of the
module package with --source.

The CLI also includes:

  • xmldoc, which writes the doc-comment file from Go source comments
  • Shell completion generation for bash, zsh, fish, and PowerShell
  • A gen-docs helper that can emit Markdown reference docs for the CLI itself

The process exits with the code of the failure: 1 module not found,
2 module load error, 3 doc comments not found, 4 doc comments load error,
5 unhandled error, 6 warnings treated as errors.
`

func newRootCmd(stdout io.Writer, engineOpts ...engine.Option) *cobra.Command {
	app := &cliApp{stdout: stdout, engineOpts: engineOpts}
	cmd := &cobra.Command{
		Use:           "go-cmdletdoc [flags] <module>",
		Short:         "Generate MAML help for command modules",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.BoolVar(&app.opts.strict, "strict", false, "treat documentation warnings as errors")
	flags.StringSliceVar(&app.opts.excludedSets, "exclude-parameter-sets", nil, "parameter sets to leave out of the syntax section")
	flags.StringVarP(&app.opts.outputPath, "output", "o", "", "help file to write (default <module>-Help.xml)")
	flags.StringVar(&app.opts.docCommentsPath, "doc-comments", "", "doc-comment file (default <module without extension>.xml)")
	flags.StringVar(&app.opts.sourcePattern, "source", "", "read doc comments from this Go package instead of a doc-comment file")
	flags.StringVar(&app.opts.configPath, "config", "", "YAML config file (default ./.cmdletdoc.yaml when present)")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, cmd.Flags(), args)
	}

	cmd.AddCommand(newXMLDocCmd(stdout))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newXMLDocCmd(stdout io.Writer) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "xmldoc [flags] <package>",
		Short: "Write the doc-comment file for a Go package",
		Long: strings.TrimSpace(`
Read the doc comments of a Go package and write them as a doc-comment file
that go-cmdletdoc accepts with --doc-comments.

Example:

  go-cmdletdoc xmldoc -o ./build/mymodule.xml ./mymodule
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the doc-comment file here instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := writeXMLDoc(ctx, args[0], outputPath, stdout); err != nil {
			return fmt.Errorf("xmldoc %s: %w", args[0], err)
		}
		return nil
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for go-cmdletdoc.

The output should be evaluated by your shell. For example:

  # bash
  go-cmdletdoc completion bash > /usr/local/etc/bash_completion.d/go-cmdletdoc

  # zsh
  go-cmdletdoc completion zsh > "${fpath[1]}/_go-cmdletdoc"

  # fish
  go-cmdletdoc completion fish | source

  # PowerShell
  go-cmdletdoc completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  go-cmdletdoc gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
