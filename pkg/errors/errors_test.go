// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and the domain constructors

package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "template_not_found_error",
			code:    errors.ErrTemplateNotFound,
			message: "no such template",
			wantStr: "[TEMPLATE_NOT_FOUND] no such template",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrMissingVariable, "error 1")
	err2 := errors.New(errors.ErrMissingVariable, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with *errors.Error")
		}
	})
}

func TestDomainConstructors(t *testing.T) {
	t.Run("template_not_found", func(t *testing.T) {
		err := errors.TemplateNotFound("art")
		if !errors.IsErrorCode(err, errors.ErrTemplateNotFound) {
			t.Errorf("code = %v, want %v", err.Code, errors.ErrTemplateNotFound)
		}
		if err.Details[errors.DetailTemplate] != "art" {
			t.Errorf("template detail = %v, want art", err.Details[errors.DetailTemplate])
		}
	})

	t.Run("missing_variable_with_path", func(t *testing.T) {
		err := errors.MissingVariable("Project Name", "README.md")
		want := `[MISSING_VARIABLE] no value for variable "Project Name" in README.md`
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		if err.Details[errors.DetailVariable] != "Project Name" {
			t.Errorf("variable detail = %v", err.Details[errors.DetailVariable])
		}
	})

	t.Run("missing_variable_without_path", func(t *testing.T) {
		err := errors.MissingVariable("x", "")
		want := `[MISSING_VARIABLE] no value for variable "x"`
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("destination_exists", func(t *testing.T) {
		err := errors.DestinationExists("/tmp/out")
		if err.Details[errors.DetailPath] != "/tmp/out" {
			t.Errorf("path detail = %v", err.Details[errors.DetailPath])
		}
	})

	t.Run("io_failure_wraps_os_error", func(t *testing.T) {
		err := errors.IOFailure(fs.ErrPermission, "write", "/tmp/out/file")
		if !stderrors.Is(err, fs.ErrPermission) {
			t.Error("IOFailure should wrap the OS error")
		}
		if err.Details[errors.DetailOp] != "write" {
			t.Errorf("op detail = %v", err.Details[errors.DetailOp])
		}
	})

	t.Run("io_failure_nil", func(t *testing.T) {
		if err := errors.IOFailure(nil, "write", "x"); err != nil {
			t.Error("IOFailure(nil) should return nil")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrDestinationExists, "exists"),
			code:     errors.ErrDestinationExists,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrDestinationExists, "exists"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrIOFailure, "denied"),
			code:     errors.ErrIOFailure,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrIOFailure,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrIOFailure,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "structured_error",
			err:      errors.TemplateNotFound("x"),
			expected: errors.ErrTemplateNotFound,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.IOFailure(rootCause, "read", "config.toml")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var inner *errors.Error
		if !stderrors.As(configErr.Unwrap(), &inner) {
			t.Fatal("expected a structured middle error")
		}
		if inner.Code != errors.ErrIOFailure {
			t.Errorf("middle code = %v, want %v", inner.Code, errors.ErrIOFailure)
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})

	t.Run("details_of_top_level", func(t *testing.T) {
		if errors.GetErrorDetails(configErr) == nil {
			t.Error("details should be initialized")
		}
		if errors.GetErrorDetails(rootCause) != nil {
			t.Error("standard errors have no details")
		}
	})
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"standard", stderrors.New("plain"), "plain"},
		{"coded", errors.DestinationExists("/tmp/out"), "destination /tmp/out already exists"},
		{"wrapped", errors.IOFailure(fs.ErrPermission, "write", "/tmp/out/a"), "write /tmp/out/a: permission denied"},
		{
			"nested",
			errors.Wrap(errors.MissingVariable("x", ""), errors.ErrInternal, "outer"),
			`outer: no value for variable "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
