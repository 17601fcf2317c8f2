package errors

import (
	"strings"
	"testing"
)

func TestValidateDesignName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "My Dream House", false},
		{"valid unicode", "Casa Sueño", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", MaxDesignNameLength+1), true},
		{"newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDesignName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDesignName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidName {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateRoomID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Bed1", false},
		{"valid dashed", "guest-bath", false},

		{"empty", "", true},
		{"space", "Bed 1", true},
		{"tab", "Bed\t1", true},
		{"too long", strings.Repeat("x", MaxRoomIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoomID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "designs/42/plan.pdf", false},
		{"valid flat", "plan.svg", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "designs/../../secret", true},
		{"backslash", "designs\\plan.pdf", true},
		{"control", "plan\x01.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateObjectKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrompt(t *testing.T) {
	if err := ValidatePrompt("3 bhk with garden"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePrompt(strings.Repeat("x", MaxPromptLength+1)); err == nil {
		t.Error("expected error for oversized prompt")
	}
}
