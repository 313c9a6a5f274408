package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is the sentinel every ValidationError unwraps to
var ErrValidation = errors.New("validation failed")

// ValidationError lists the offending fields and the rule each one broke
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
