package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", Input("user_count must be >= 0"), "[INPUT_ERROR] user_count must be >= 0"},
		{"wrapped", Parsing("scenario.yaml", io.ErrUnexpectedEOF), "[PARSING_ERROR] scenario.yaml: unexpected EOF"},
		{"not found", NotFound("preset", "enterprise"), "[NOT_FOUND] preset not found: enterprise"},
		{"not supported", NotSupported("export to pdf"), "[NOT_SUPPORTED] operation not supported: export to pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeThroughWrapping(t *testing.T) {
	base := Config("bad config file", io.EOF)
	wrapped := fmt.Errorf("loading: %w", base)

	if !IsType(wrapped, TypeConfig) {
		t.Error("IsType should see through fmt wrapping")
	}
	if TypeOf(wrapped) != TypeConfig {
		t.Errorf("TypeOf = %s", TypeOf(wrapped))
	}
	if TypeOf(io.EOF) != TypeInternal {
		t.Errorf("TypeOf(plain) = %s, want INTERNAL_ERROR", TypeOf(io.EOF))
	}
	if base.Unwrap() != io.EOF {
		t.Error("Unwrap lost the cause")
	}
}

func TestFieldsOf(t *testing.T) {
	base := Invalid([]string{"user_count", "scope.ai_agents"}, "user_count must be >= 0")
	wrapped := fmt.Errorf("estimate: %w", Wrap(TypeInput, "invalid scenario", base))

	got := FieldsOf(wrapped)
	if len(got) != 2 || got[0] != "user_count" || got[1] != "scope.ai_agents" {
		t.Errorf("FieldsOf = %v", got)
	}
	if FieldsOf(io.EOF) != nil {
		t.Error("plain error should carry no fields")
	}
	if !base.Is(TypeInput) || base.Is(TypeExport) {
		t.Error("Is mismatch")
	}
}

func TestStatusAndExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		exit   int
	}{
		{"input", Input("bad"), 400, 2},
		{"parsing", Parsing("scenario.hcl", io.EOF), 400, 2},
		{"not supported", NotSupported("pdf"), 400, 2},
		{"not found", NotFound("format", "pdf"), 404, 1},
		{"config", Config("bad file", io.EOF), 500, 2},
		{"export", Export("write", io.ErrShortWrite), 500, 1},
		{"untyped", io.EOF, 500, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err).HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.status)
			}
			if got := ExitCode(tt.err); got != tt.exit {
				t.Errorf("ExitCode = %d, want %d", got, tt.exit)
			}
		})
	}

	if ExitCode(nil) != 0 {
		t.Error("nil error should exit 0")
	}
}
