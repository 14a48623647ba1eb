package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		CodeUnknown,
		CodeValidation,
		CodeConfiguration,
		CodeMalformedInput,
		CodeNoHosts,
		CodeMissingField,
		CodeFileNotFound,
		CodeFileTooLarge,
		CodeExportFailed,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("Error code %v should not be empty", code)
		}
		if seen[code] {
			t.Errorf("Error code %s is duplicated", code)
		}
		seen[code] = true
	}
}

func TestParseError(t *testing.T) {
	t.Run("message with file", func(t *testing.T) {
		err := NewParseError(CodeNoHosts, "no hosts", "scan.xml")
		expected := "[NO_HOSTS] no hosts (file: scan.xml)"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("message without file", func(t *testing.T) {
		err := NewParseError(CodeMalformedInput, "bad xml", "")
		expected := "[MALFORMED_INPUT] bad xml"
		if err.Error() != expected {
			t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := fmt.Errorf("XML syntax error on line 1")
		err := ErrMalformedInput("a.xml", cause)
		if err.Unwrap() != cause {
			t.Error("Unwrap should return the original cause")
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should find the cause")
		}
		if !strings.Contains(err.Error(), "line 1") {
			t.Errorf("Error message should include the cause, got '%s'", err.Error())
		}
	})
}

func TestExportError(t *testing.T) {
	cause := fmt.Errorf("no clipboard utilities available")
	err := WrapExportError("clipboard unavailable", "clipboard", cause)

	if err.Code != CodeExportFailed {
		t.Errorf("Expected code %s, got %s", CodeExportFailed, err.Code)
	}
	expected := "[EXPORT_FAILED] clipboard unavailable (target: clipboard)"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestConfigError(t *testing.T) {
	err := ErrConfigInvalid("ingest.workers", 0)
	if err.Field != "ingest.workers" {
		t.Errorf("Expected field 'ingest.workers', got '%s'", err.Field)
	}
	expected := "[VALIDATION] Invalid configuration value (field: ingest.workers)"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	wrapped := WrapConfigError(CodeConfiguration, "read failed", fmt.Errorf("denied"))
	if wrapped.Unwrap() == nil {
		t.Error("Unwrap should return the cause")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"parse error", ErrNoHosts("x.xml"), CodeNoHosts},
		{"export error", WrapExportError("m", "t", nil), CodeExportFailed},
		{"config error", ErrConfigInvalid("f", 1), CodeValidation},
		{"plain error", fmt.Errorf("plain"), CodeUnknown},
		{"nil error", nil, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %s, want %s", got, tt.want)
			}
			if tt.want != CodeUnknown && !IsCode(tt.err, tt.want) {
				t.Errorf("IsCode() should be true for %s", tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"malformed", ErrMalformedInput("a.xml", nil), "valid Nmap XML"},
		{"no hosts", ErrNoHosts("a.xml"), "does not contain any hosts"},
		{"not found", NewParseError(CodeFileNotFound, "missing", "a.xml"), "could not be found"},
		{"too large", NewParseError(CodeFileTooLarge, "big", "a.xml"), "larger than"},
		{"export", WrapExportError("permission denied", "report.pdf", nil), "report.pdf"},
		{"unknown", fmt.Errorf("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("Expected empty message, got '%s'", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Expected message to contain '%s', got '%s'", tt.contains, got)
			}
		})
	}
}
