package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaValidation indicates a document or score that does not fit the wire schema.
var ErrSchemaValidation = errors.New("schema validation failed")

// FieldError is one structural problem found in a document.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Msg
}

// SchemaValidationError aggregates every issue found while validating.
type SchemaValidationError struct {
	Issues []FieldError
}

func (e *SchemaValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}

	return fmt.Sprintf("%s: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}

func (e *SchemaValidationError) Unwrap() error { return ErrSchemaValidation }
