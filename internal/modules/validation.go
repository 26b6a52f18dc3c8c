package modules

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes an invalid property of an entity
type ValidationError struct {
	Property    string
	Code        string
	Description string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Description)
}

// Validation codes
const (
	CodeCannotBeBlank = "cannot_be_blank"
	CodeCannotBeEmpty = "cannot_be_empty"
	CodeInvalid       = "invalid"
)

// HasText returns a validation error when value is blank
func HasText(property, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Property:    property,
			Code:        CodeCannotBeBlank,
			Description: fmt.Sprintf("%s cannot be blank", property),
		}
	}
	return nil
}

// HasItems returns a validation error when items is empty
func HasItems[T any](property, alias string, items []T) error {
	if len(items) == 0 {
		if alias == "" {
			alias = property
		}
		return &ValidationError{
			Property:    property,
			Code:        CodeCannotBeEmpty,
			Description: fmt.Sprintf("You need to select at least one %s", alias),
		}
	}
	return nil
}

// ValidationErrors extracts the validation errors joined in err
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var out []*ValidationError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, ValidationErrors(e)...)
		}
		return out
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		out = append(out, ve)
	}
	return out
}
