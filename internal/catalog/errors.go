package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrCatalogUnreadable indicates the catalog file could not be read
	ErrCatalogUnreadable = errors.New("catalog unreadable")

	// ErrCatalogMalformed indicates the catalog could not be parsed or
	// failed shape validation; the whole catalog is rejected
	ErrCatalogMalformed = errors.New("catalog malformed")
)

// ShapeError reports a category missing one of its required fields.
// There is no partial acceptance: one malformed category rejects the
// entire catalog.
type ShapeError struct {
	Category string
	Missing  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("category %q is missing %q", e.Category, e.Missing)
}

func (e *ShapeError) Unwrap() error {
	return ErrCatalogMalformed
}

// NewShapeError creates a new catalog shape error
func NewShapeError(category, missing string) error {
	return &ShapeError{
		Category: category,
		Missing:  missing,
	}
}
