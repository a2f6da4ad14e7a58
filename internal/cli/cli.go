// Package cli implements the command line linting host: catalog
// resolution, file discovery, linting, reporting, and in-place fixing.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/dtlint/internal/catalog"
	"bennypowers.dev/dtlint/internal/lint"
)

// Exit codes returned by Run.
const (
	ExitClean    = 0 // no problems, or only problems the fixer resolved
	ExitProblems = 1 // at least one error-severity problem remains
	ExitFatal    = 2 // catalog, usage, or file access error
)

// Options configures a CLI lint run.
type Options struct {
	CatalogPath    string   // explicit catalog file; discovered in WorkDir when empty
	Margin         float64  // close-match tolerance in pixels
	CheckFallbacks bool     // verify var() fallbacks against catalog values
	Fix            bool     // rewrite fixable values in place
	Format         string   // "text" or "json"; defaults to text
	NoColor        bool     // disable styled output
	Args           []string // files, directories, or glob patterns
	WorkDir        string   // base for relative paths and discovery; defaults to "."
	Stdout         io.Writer
	Stderr         io.Writer
}

// Run executes one lint pass over the files named by opts.Args and
// reports the outcome, returning a process exit code.
func Run(opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Format != FormatText && opts.Format != FormatJSON {
		fmt.Fprintf(opts.Stderr, "design-tokens-lint: unknown format %q\n", opts.Format)
		return ExitFatal
	}
	if len(opts.Args) == 0 {
		fmt.Fprintln(opts.Stderr, "design-tokens-lint: no files or patterns given")
		return ExitFatal
	}

	cat, err := resolveCatalog(opts)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "design-tokens-lint: %v\n", err)
		return ExitFatal
	}

	files, err := CollectFiles(opts.WorkDir, opts.Args)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "design-tokens-lint: %v\n", err)
		return ExitFatal
	}

	linter := lint.New(cat, lint.Options{
		Margin:         opts.Margin,
		CheckFallbacks: opts.CheckFallbacks,
	})

	var reports []FileReport
	fatal := false
	for _, file := range files {
		report, err := lintFile(linter, file, opts.Fix)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "design-tokens-lint: %v\n", err)
			fatal = true
			continue
		}
		report.Path = relativeTo(opts.WorkDir, file)
		reports = append(reports, report)
	}

	printer := NewPrinter(opts.Stdout, opts.Format, !opts.NoColor)
	if err := printer.Print(reports); err != nil {
		fmt.Fprintf(opts.Stderr, "design-tokens-lint: %v\n", err)
		return ExitFatal
	}

	switch {
	case fatal:
		return ExitFatal
	case countErrors(reports) > 0:
		return ExitProblems
	default:
		return ExitClean
	}
}

// resolveCatalog loads the configured catalog, or discovers one in the
// working directory when no path was given.
func resolveCatalog(opts Options) (catalog.TokenCatalog, error) {
	path := opts.CatalogPath
	if path == "" {
		discovered, ok := catalog.Discover(opts.WorkDir)
		if !ok {
			return nil, fmt.Errorf("no token catalog found in %s (tried %s); use -catalog",
				opts.WorkDir, strings.Join(catalog.DefaultNames, ", "))
		}
		path = discovered
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(opts.WorkDir, path)
	}
	return catalog.Load(path)
}

// lintFile lints one file, optionally rewriting fixable values in place
// first. With fix enabled the reported problems are those remaining in
// the rewritten source.
func lintFile(linter *lint.Linter, path string, fix bool) (FileReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, err
	}
	source := string(data)
	language := languageForPath(path)

	diagnostics := linter.LintDocument(language, source)

	if fix && hasFixes(diagnostics) {
		fixed := lint.ApplyFixes(source, diagnostics)
		if fixed != source {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, []byte(fixed), mode); err != nil {
				return FileReport{}, fmt.Errorf("fixing %s: %w", path, err)
			}
			source = fixed
			diagnostics = linter.LintDocument(language, source)
		}
	}

	return FileReport{Path: path, Source: source, Problems: diagnostics}, nil
}

// languageForPath maps a file extension to the language identifier used
// by the linter's document dispatch.
func languageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return "css"
	case ".html":
		return "html"
	case ".js", ".mjs":
		return "javascript"
	case ".ts":
		return "typescript"
	}
	return ""
}

// relativeTo returns path relative to base when it lies under it, for
// shorter report locations.
func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func hasFixes(diagnostics []lint.Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Fix != nil {
			return true
		}
	}
	return false
}

func countErrors(reports []FileReport) int {
	n := 0
	for _, report := range reports {
		for _, problem := range report.Problems {
			if problem.Severity == lint.SeverityError {
				n++
			}
		}
	}
	return n
}
