package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"bennypowers.dev/dtlint/internal/lint"
	"bennypowers.dev/dtlint/internal/position"
	"github.com/charmbracelet/lipgloss"
)

// Output formats accepted by the printer.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// FileReport holds the lint outcome for a single file. Source is the
// text the problem offsets refer to (the rewritten text when the fixer
// ran).
type FileReport struct {
	Path     string
	Source   string
	Problems []lint.Diagnostic
}

// Printer renders lint reports as human-readable text or as JSON.
type Printer struct {
	out    io.Writer
	format string
	styles styles
}

type styles struct {
	location lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	code     lipgloss.Style
	summary  lipgloss.Style
}

// NewPrinter creates a printer writing to out. With color enabled the
// location, severity, and summary are styled; lipgloss still degrades to
// plain text when out is not a terminal.
func NewPrinter(out io.Writer, format string, color bool) *Printer {
	p := &Printer{out: out, format: format}
	if color {
		p.styles = styles{
			location: lipgloss.NewStyle().Faint(true),
			err:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).Bold(true),
			warn:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"}).Bold(true),
			code:     lipgloss.NewStyle().Faint(true),
			summary:  lipgloss.NewStyle().Bold(true),
		}
	} else {
		plain := lipgloss.NewStyle()
		p.styles = styles{location: plain, err: plain, warn: plain, code: plain, summary: plain}
	}
	return p
}

// Print renders all reports. Text format prints one line per problem
// plus a closing summary; JSON format prints an array of file reports.
func (p *Printer) Print(reports []FileReport) error {
	if p.format == FormatJSON {
		return p.printJSON(reports)
	}
	return p.printText(reports)
}

func (p *Printer) printText(reports []FileReport) error {
	errors, warnings := 0, 0
	for _, report := range reports {
		for _, problem := range report.Problems {
			line, col := position.LineColumn(report.Source, problem.StartOffset)
			var severity string
			if problem.Severity == lint.SeverityError {
				severity = p.styles.err.Render(problem.Severity.String())
				errors++
			} else {
				severity = p.styles.warn.Render(problem.Severity.String())
				warnings++
			}
			location := p.styles.location.Render(fmt.Sprintf("%s:%d:%d", report.Path, line, col))
			code := p.styles.code.Render("[" + problem.Code + "]")
			fmt.Fprintf(p.out, "%s %s %s %s\n", location, severity, problem.Message, code)
		}
	}

	total := errors + warnings
	if total == 0 {
		return nil
	}
	summary := fmt.Sprintf("%d problems (%d errors, %d warnings)", total, errors, warnings)
	fmt.Fprintln(p.out, p.styles.summary.Render(summary))
	return nil
}

type problemJSON struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Code     string `json:"code"`
}

type fileReportJSON struct {
	Path     string        `json:"path"`
	Problems []problemJSON `json:"problems"`
}

func (p *Printer) printJSON(reports []FileReport) error {
	out := make([]fileReportJSON, 0, len(reports))
	for _, report := range reports {
		problems := make([]problemJSON, 0, len(report.Problems))
		for _, problem := range report.Problems {
			line, col := position.LineColumn(report.Source, problem.StartOffset)
			problems = append(problems, problemJSON{
				Line:     line,
				Column:   col,
				Severity: problem.Severity.String(),
				Message:  problem.Message,
				Code:     problem.Code,
			})
		}
		out = append(out, fileReportJSON{Path: report.Path, Problems: problems})
	}

	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
