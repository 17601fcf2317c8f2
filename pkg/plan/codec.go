package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a layout serialization.
type Format string

// Supported layout encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. Anything that is
// not .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l.Clone(), "", "  ")
}

// MarshalLayoutAs serializes a Layout in the given format.
func MarshalLayoutAs(l Layout, f Format) ([]byte, error) {
	if f == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(l.Clone()); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return MarshalLayout(l)
}

// UnmarshalLayout deserializes JSON bytes into a Layout and validates it.
func UnmarshalLayout(data []byte) (Layout, error) {
	return UnmarshalLayoutAs(data, FormatJSON)
}

// UnmarshalLayoutAs deserializes a Layout in the given format and validates
// it. Nil room and extra lists are normalized to empty slices.
func UnmarshalLayoutAs(data []byte, f Format) (Layout, error) {
	var l Layout
	var err error
	if f == FormatYAML {
		err = yaml.Unmarshal(data, &l)
	} else {
		err = json.Unmarshal(data, &l)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	l = l.Clone()
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to path, encoded by extension.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayoutAs(l, FormatForPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from path, decoded by extension.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayoutAs(data, FormatForPath(path))
}
