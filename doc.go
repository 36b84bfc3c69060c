// # go-cmdletdoc
//
// `go-cmdletdoc` generates MAML help files for command modules written in Go.
// It loads a module plugin, reflects over the commands the module registers
// and merges their structure with XML doc comments into a `<module>-Help.xml`
// file that PowerShell-style help viewers understand.
//
// Key capabilities:
//
//   - derive names, parameter sets, positions, pipeline input, aliases,
//     wildcard support, default values, enum values, input and output types
//     from the command structs and their `param` tags.
//   - read documentation from a doc-comment file (`<module>.xml`) or straight
//     from the Go source comments of the module package (`--source`).
//   - accept plain `<para type="...">`, `<list type="alertSet">`,
//     `<example>` and `<list type="link">` markup, or embedded MAML.
//   - replace `<see cref="..."/>` references with readable names.
//   - report missing documentation as warnings, and fail on them with
//     `--strict`.
//
// ## Usage
//
//	go-cmdletdoc [flags] <module>
//
// Examples:
//
//   - Generate help next to the module, reading `mymodule.xml`:
//
//     go-cmdletdoc ./build/mymodule.so
//
//   - Read the comments from the module source and fail on warnings:
//
//     go-cmdletdoc --strict --source ./mymodule ./build/mymodule.so
//
//   - Write the doc-comment file once, for tools that consume it:
//
//     go-cmdletdoc xmldoc -o ./build/mymodule.xml ./mymodule
//
// ## Modules
//
// A module is a Go plugin (`go build -buildmode=plugin`) exporting
//
//	var Module = cmdlet.NewModule("mymodule", GetWidgetCommand{}, Widget{})
//
// Commands embed `cmdlet.Cmdlet` with `verb` and `noun` tags and declare
// parameters with `param` tags:
//
//	type GetWidgetCommand struct {
//		cmdlet.Cmdlet `verb:"Get" noun:"Widget"`
//
//		Name string `param:"set=ByName,mandatory,position=0" alias:"n"`
//		Id   int    `param:"set=ById,mandatory,position=0,pipelinebyname"`
//	}
//
// ## Supported Flags
//
//   - `--strict`: treat documentation warnings as errors (exit code 6).
//   - `--exclude-parameter-sets a,b`: leave parameter sets out of the syntax.
//   - `-o FILE`: help file to write (default `<module>-Help.xml`).
//   - `--doc-comments FILE`: doc-comment file (default `<module>.xml`).
//   - `--source PKG`: read doc comments from a Go package instead.
//   - `--config FILE`: YAML defaults (`.cmdletdoc.yaml` when present).
//   - `-v`: debug logging.
//
// The single-dash forms `-strict` and `-excludeParameterSets a,b` are accepted
// as well.
//
// ## Exit Codes
//
// 0 success, 1 module not found, 2 module load error, 3 doc comments not
// found, 4 doc comments load error, 5 unhandled error, 6 warnings treated as
// errors.
//
// ## Shell Completion
//
//	go-cmdletdoc completion bash        # bash
//	go-cmdletdoc completion zsh         # zsh
//	go-cmdletdoc completion fish | source
//	go-cmdletdoc completion powershell | Out-String | Invoke-Expression
//
// ## CLI Docs
//
//	go-cmdletdoc gen-docs ./docs/cli
package main
