package validators

import (
	"errors"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
)

var ErrUnsupportedType = errors.New("unsupported type for validation")

// ValidationError lists every violated field of one value. Handlers render
// it as a 400 ValidationFailed body.
type ValidationError struct {
	Fields []models.FieldError
}

// NewValidationError builds a ValidationError from domain checks that cannot
// be expressed as struct tags (e.g. a location cycle).
func NewValidationError(fields ...models.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
