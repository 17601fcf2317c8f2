package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLayout, "duplicate room id %q", "Bed1")

	if err.Code != ErrCodeInvalidLayout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLayout)
	}
	if err.Message != `duplicate room id "Bed1"` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_LAYOUT: duplicate room id "Bed1"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "parse prompt")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "NETWORK_ERROR: parse prompt: connection refused" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeDesignNotFound, "x"), ErrCodeDesignNotFound, true},
		{"non-matching code", New(ErrCodeInvalidInput, "x"), ErrCodeNetwork, false},
		{"outer code wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format %q", "bmp")
	if GetCode(err) != ErrCodeInvalidFormat {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode(plain) should be empty")
	}
	if UserMessage(err) != `unknown format "bmp"` {
		t.Errorf("UserMessage() = %v", UserMessage(err))
	}
	if UserMessage(errors.New("plain error")) != "plain error" {
		t.Error("UserMessage(plain) should return the error string")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid layout", New(ErrCodeInvalidLayout, "x"), http.StatusBadRequest},
		{"invalid name", New(ErrCodeInvalidName, "x"), http.StatusBadRequest},
		{"design not found", New(ErrCodeDesignNotFound, "x"), http.StatusNotFound},
		{"network", New(ErrCodeNetwork, "x"), http.StatusBadGateway},
		{"timeout", New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{"unsupported", New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
