package domain

import (
	"fmt"
	"strings"
)

// FieldError describes a single violated input rule, addressed to the form
// field that caused it.
type FieldError struct {
	Field   string `json:"id"`
	Message string `json:"message"`
}

// Violations accumulates every violated rule for a request so callers can
// render all problems at once rather than just the first.
type Violations []FieldError

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

// Add appends a violation for field.
func (v *Violations) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// OrNil returns the accumulated violations as an error, or nil when empty.
func (v Violations) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
