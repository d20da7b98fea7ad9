package domain

import "fmt"

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	ErrorKindConversion  ErrorKind = "conversion"  // rasterization failure, fatal per document
	ErrorKindExtraction  ErrorKind = "extraction"  // field not found, non-fatal
	ErrorKindParse       ErrorKind = "parse"       // card rejected, non-fatal
	ErrorKindPersistence ErrorKind = "persistence" // store write failure, document left for retry
	ErrorKindConfig      ErrorKind = "config"
	ErrorKindIO          ErrorKind = "io"
)

// DomainError represents a pipeline error with its stage classification.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(kind ErrorKind, message string, err error) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func ConversionError(message string, err error) *DomainError {
	return NewError(ErrorKindConversion, message, err)
}

func ExtractionError(message string, err error) *DomainError {
	return NewError(ErrorKindExtraction, message, err)
}

func ParseRejection(message string, err error) *DomainError {
	return NewError(ErrorKindParse, message, err)
}

func PersistenceError(message string, err error) *DomainError {
	return NewError(ErrorKindPersistence, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorKindConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorKindIO, message, err)
}

// KindOf returns the classification of err, or empty string for foreign errors.
func KindOf(err error) ErrorKind {
	if de, ok := err.(*DomainError); ok {
		return de.Kind
	}
	return ""
}
