// Package errors provides structured error handling for scanview operations.
// It defines error codes and typed errors for ingesting scan files, exporting
// derived views and loading configuration, plus helpers to turn any of them
// into a message fit for the user.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"

	// Ingest errors.
	CodeMalformedInput ErrorCode = "MALFORMED_INPUT"
	CodeNoHosts        ErrorCode = "NO_HOSTS"
	CodeMissingField   ErrorCode = "MISSING_FIELD"

	// File system errors.
	CodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	CodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"

	// Export errors.
	CodeExportFailed ErrorCode = "EXPORT_FAILED"
)

// ParseError represents a failure to turn one scan file into hosts.
type ParseError struct {
	Code    ErrorCode
	Message string
	File    string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.File != "" {
		msg = fmt.Sprintf("%s (file: %s)", msg, e.File)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a parse error for the given file.
func NewParseError(code ErrorCode, message, file string) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		File:    file,
	}
}

// WrapParseError wraps an existing error as a parse error.
func WrapParseError(code ErrorCode, message, file string, err error) *ParseError {
	return &ParseError{
		Code:    code,
		Message: message,
		File:    file,
		Cause:   err,
	}
}

// ExportError represents a failure to deliver a derived view to its destination.
type ExportError struct {
	Code    ErrorCode
	Message string
	Target  string
	Cause   error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// WrapExportError wraps an existing error as an export error.
func WrapExportError(message, target string, err error) *ExportError {
	return &ExportError{
		Code:    CodeExportFailed,
		Message: message,
		Target:  target,
		Cause:   err,
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ParseError:
		return e.Code
	case *ExportError:
		return e.Code
	case *ConfigError:
		return e.Code
	}
	return CodeUnknown
}

// UserMessage converts an error into the short message shown next to a file
// or export action. Errors without a known code get a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch GetCode(err) {
	case CodeMalformedInput:
		return "Error parsing XML file. Please ensure the file is in valid Nmap XML format."
	case CodeNoHosts:
		return "The scan file does not contain any hosts."
	case CodeFileNotFound:
		return "The scan file could not be found."
	case CodeFileTooLarge:
		return "The scan file is larger than the configured limit."
	case CodeExportFailed:
		if e, ok := err.(*ExportError); ok && e.Target != "" {
			return fmt.Sprintf("Export to %s failed: %s.", e.Target, e.Message)
		}
		return "Export failed."
	case CodeValidation, CodeConfiguration:
		return err.Error()
	}
	return "Unexpected error: " + err.Error()
}

// Common error creation functions

// ErrMalformedInput creates an error for content that is not a scan document.
func ErrMalformedInput(file string, err error) *ParseError {
	return WrapParseError(CodeMalformedInput, "File is not well-formed Nmap XML", file, err)
}

// ErrNoHosts creates an error for a scan document without host elements.
func ErrNoHosts(file string) *ParseError {
	return NewParseError(CodeNoHosts, "Scan document contains no hosts", file)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}
