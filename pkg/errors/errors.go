// Package errors provides custom error types for the crosscheck system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the crosscheck system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates that a source record could not be normalized
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnknownPlayer indicates that a player reference did not resolve
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrStructuralAnomaly indicates events that could not be matched or explained
	ErrStructuralAnomaly = errors.New("structural anomaly")

	// ErrNoAuthoritativeSource indicates that no record for the authoritative source was provided
	ErrNoAuthoritativeSource = errors.New("no authoritative source")

	// ErrEmptyRoster indicates that a game was submitted without roster entries
	ErrEmptyRoster = errors.New("empty roster")

	// ErrNoRecords indicates that a game was submitted without any source records
	ErrNoRecords = errors.New("no source records")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid indicates that the provided API key is invalid
	ErrAPIKeyInvalid = errors.New("API key invalid")
)

// AdapterError represents a source record that is missing required structural
// fields. The reconciler marks the source unavailable and continues with the
// remaining sources.
type AdapterError struct {
	Source  string
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *AdapterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("adapter %s: field %s: %s", e.Source, e.Field, e.Message)
	}
	return fmt.Sprintf("adapter %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AdapterError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AdapterError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewAdapterError creates a new AdapterError
func NewAdapterError(source, field, message string) *AdapterError {
	return &AdapterError{Source: source, Field: field, Message: message}
}

// UnknownPlayerError represents a jersey/team reference with no roster entry.
// Hard failure when raised against the authoritative source; a secondary
// source is downgraded instead.
type UnknownPlayerError struct {
	Team   string
	Jersey int
	Source string
}

// Error implements the error interface
func (e *UnknownPlayerError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("unknown player #%d on %s (source %s)", e.Jersey, e.Team, e.Source)
	}
	return fmt.Sprintf("unknown player #%d on %s", e.Jersey, e.Team)
}

// Is implements errors.Is support
func (e *UnknownPlayerError) Is(target error) bool {
	return target == ErrUnknownPlayer
}

// NewUnknownPlayerError creates a new UnknownPlayerError
func NewUnknownPlayerError(team string, jersey int, source string) *UnknownPlayerError {
	return &UnknownPlayerError{Team: team, Jersey: jersey, Source: source}
}

// StructuralAnomalyError represents secondary events that matched nothing in
// the authoritative set and are not explained by a known scenario. Reported,
// never fatal.
type StructuralAnomalyError struct {
	Source      string
	Description string
	Count       int
}

// Error implements the error interface
func (e *StructuralAnomalyError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("structural anomaly in %s (%d events): %s", e.Source, e.Count, e.Description)
	}
	return fmt.Sprintf("structural anomaly in %s: %s", e.Source, e.Description)
}

// Is implements errors.Is support
func (e *StructuralAnomalyError) Is(target error) bool {
	return target == ErrStructuralAnomaly
}

// NewStructuralAnomalyError creates a new StructuralAnomalyError
func NewStructuralAnomalyError(source, description string, count int) *StructuralAnomalyError {
	return &StructuralAnomalyError{Source: source, Description: description, Count: count}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "clock", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSourceUnavailable checks if an error marks a source unavailable
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsUnknownPlayer checks if an error is an unresolved player reference
func IsUnknownPlayer(err error) bool {
	return errors.Is(err, ErrUnknownPlayer)
}

// IsStructuralAnomaly checks if an error is a structural anomaly
func IsStructuralAnomaly(err error) bool {
	return errors.Is(err, ErrStructuralAnomaly)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAdapter wraps an error as an AdapterError
func WrapAdapter(source, field string, err error) error {
	if err == nil {
		return nil
	}
	return &AdapterError{Source: source, Field: field, Message: err.Error(), Err: err}
}
