package main

import (
	"flag"
	"fmt"
	"os"

	"bennypowers.dev/dtlint/internal/cli"
	"bennypowers.dev/dtlint/internal/lint"
	"bennypowers.dev/dtlint/internal/log"
	"bennypowers.dev/dtlint/internal/version"
	"bennypowers.dev/dtlint/lsp"
)

func main() {
	os.Exit(run())
}

// run parses flags and dispatches to the CLI linter or the LSP server.
// It is separate from main so deferred cleanup runs before os.Exit.
func run() int {
	flags := flag.NewFlagSet("design-tokens-lint", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	catalogPath := flags.String("catalog", "", "path to the token catalog (discovered in the working directory when omitted)")
	margin := flags.Float64("margin", lint.DefaultMargin, "close-match tolerance in pixels; 0 reports exact matches only")
	checkFallbacks := flags.Bool("check-fallbacks", true, "verify var() fallbacks against catalog values")
	fix := flags.Bool("fix", false, "rewrite fixable values in place")
	format := flags.String("format", cli.FormatText, "output format: text or json")
	noColor := flags.Bool("no-color", false, "disable colored output")
	runLSP := flags.Bool("lsp", false, "run as a language server over stdio")
	showVersion := flags.Bool("version", false, "print version and exit")

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: design-tokens-lint [flags] [files, directories, or globs]\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return cli.ExitFatal
	}

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return cli.ExitClean
	}

	if *runLSP {
		server, err := lsp.NewServer()
		if err != nil {
			log.Error("Failed to create LSP server: %v", err)
			return 1
		}
		defer func() { _ = server.Close() }()

		// Run with stdio transport (for VSCode and other editors)
		if err := server.RunStdio(); err != nil {
			log.Error("Server error: %v", err)
			return 1
		}
		return 0
	}

	return cli.Run(cli.Options{
		CatalogPath:    *catalogPath,
		Margin:         *margin,
		CheckFallbacks: *checkFallbacks,
		Fix:            *fix,
		Format:         *format,
		NoColor:        *noColor,
		Args:           flags.Args(),
	})
}
