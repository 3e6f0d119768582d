package validation

import (
	"strings"

	"github.com/kbukum/polyglot/errors"
)

// FieldError is one rule a field failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// FieldErrors is every failure from one validation pass.
type FieldErrors []FieldError

// Add records a failure for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Err folds the failures into one INVALID_INPUT AppError that lists them
// in its message and under Details["fields"]. It returns nil when there
// are none.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.String()
	}
	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": []FieldError(fe)}
	return appErr
}
