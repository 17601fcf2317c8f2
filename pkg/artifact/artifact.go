// Package artifact publishes rendered exports so they can be shared by URL.
//
// [DiskStore] writes into a local directory served by the API server;
// [S3Store] uploads to any S3-compatible object storage and hands out
// presigned download links.
package artifact

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/dreamhouse/pkg/errors"
)

// Store publishes artifacts.
type Store interface {
	// Put stores data under key and returns a URL it can be fetched from.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Get returns the object stored under key, or a NOT_FOUND error.
	Get(ctx context.Context, key string) (Object, error)
}

// Object is a stored artifact.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Key returns a fresh object key for an export of a design:
// designs/<design>/<random><ext>. Publishing twice never overwrites.
func Key(designID, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join("designs", sanitize(designID), uuid.NewString()+ext)
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
	if s == "" {
		return "unsaved"
	}
	return s
}

func errNotFound(key string) error {
	return errors.New(errors.ErrCodeNotFound, "artifact %q not found", key)
}

func checkKey(key string) error {
	if err := errors.ValidateObjectKey(key); err != nil {
		return fmt.Errorf("artifact key: %w", err)
	}
	return nil
}
