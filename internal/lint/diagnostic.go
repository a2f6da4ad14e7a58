package lint

import "fmt"

// Severity grades a diagnostic.
type Severity int

const (
	// SeverityError is for exact token matches that should be rewritten.
	SeverityError Severity = iota
	// SeverityWarning is for close matches, fallback mismatches, and
	// catalog problems.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic codes
const (
	// CodeExactMatch flags a literal that is a token map key verbatim.
	CodeExactMatch = "token-exact-match"
	// CodeCloseMatch flags a literal within the margin of one or more tokens.
	CodeCloseMatch = "token-close-match"
	// CodeFallbackMismatch flags a var() fallback that disagrees with
	// the catalog value for its token.
	CodeFallbackMismatch = "fallback-mismatch"
	// CodeCatalogInvalid flags an unusable catalog, once per document.
	CodeCatalogInvalid = "catalog-invalid"
)

// Diagnostic is one finding, with byte offsets into the linted source.
type Diagnostic struct {
	Code        string
	Message     string
	Severity    Severity
	StartOffset int
	EndOffset   int
	// Fix is the splice that resolves the finding, when one exists.
	Fix *Fix
}

// Fix replaces the text at [StartOffset, EndOffset) with NewText.
type Fix struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// CatalogProblem builds the single document-level notice emitted when
// the catalog could not be used. The pass performs no matching in that
// case, so this is the only diagnostic the document gets.
func CatalogProblem(err error) Diagnostic {
	return Diagnostic{
		Code:     CodeCatalogInvalid,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("Design token catalog unavailable, no token checks performed: %v", err),
	}
}
