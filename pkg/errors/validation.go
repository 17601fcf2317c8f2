package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length limits for user-supplied identifiers.
const (
	MaxDesignNameLength = 120
	MaxRoomIDLength     = 64
	MaxObjectKeyLength  = 512
	MaxPromptLength     = 4000
)

// ValidateDesignName checks a design name before it is stored or used as a
// file stem. Empty names are rejected; callers substitute a default first.
func ValidateDesignName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "design name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxDesignNameLength {
		return New(ErrCodeInvalidName, "design name too long (max %d characters)", MaxDesignNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "design name contains control characters")
		}
	}
	return nil
}

// ValidateRoomID checks a single room identifier.
func ValidateRoomID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLayout, "room id cannot be empty")
	}
	if len(id) > MaxRoomIDLength {
		return New(ErrCodeInvalidLayout, "room id too long (max %d characters): %q", MaxRoomIDLength, id)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidLayout, "room id contains whitespace or control characters: %q", id)
		}
	}
	return nil
}

// ValidatePrompt bounds the free-text description sent to a prompt parser.
func ValidatePrompt(prompt string) error {
	if len(prompt) > MaxPromptLength {
		return New(ErrCodeInvalidInput, "prompt too long (max %d bytes)", MaxPromptLength)
	}
	return nil
}

// ValidateObjectKey validates an artifact object key for safety.
//
// Validation rules:
//   - Key cannot be empty
//   - No null bytes or control characters
//   - No absolute keys and no path traversal sequences (..)
//   - No backslashes
func ValidateObjectKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "object key cannot be empty")
	}
	if len(key) > MaxObjectKeyLength {
		return New(ErrCodeInvalidInput, "object key too long (max %d characters)", MaxObjectKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "object key contains invalid characters")
		}
	}
	if strings.HasPrefix(key, "/") {
		return New(ErrCodeInvalidInput, "object key must be relative")
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidInput, "object key cannot contain path traversal sequences (..)")
	}
	if strings.Contains(key, "\\") {
		return New(ErrCodeInvalidInput, "object key cannot contain backslashes")
	}
	return nil
}
