package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ElementError indicates a failure while constructing or driving a UI element
// through its lifecycle.
type ElementError struct {
	ElementID string
	Type      string
	Message   string
	Err       error
}

// NewElementError constructs an ElementError for the given element instance.
func NewElementError(id, elementType string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ElementError{ElementID: id, Type: elementType, Message: message, Err: err}
}

func (e *ElementError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.ElementID != "" && e.Type != "":
		return fmt.Sprintf("element error [%s/%s]: %s", e.Type, e.ElementID, e.Message)
	case e.Type != "":
		return fmt.Sprintf("element error [%s]: %s", e.Type, e.Message)
	default:
		return fmt.Sprintf("element error: %s", e.Message)
	}
}

// Unwrap exposes the underlying error.
func (e *ElementError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceError represents a failure writing or reading the state snapshot.
// Persistence failures are advisory; the in-memory tree stays authoritative.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// NewPersistenceError constructs a PersistenceError for the given operation.
func NewPersistenceError(op, path string, err error) error {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
