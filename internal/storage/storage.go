package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Package storage holds the upload stores. Keys are flat file names: one object per
// client-supplied name, and a later Put under the same key replaces the earlier bytes.

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the upload store used by the image handler and the /uploads route.
type Storage interface {
	// Put writes the reader's content under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object for streaming. Missing keys return ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// SanitizeKey reduces a client-supplied file name to its final path element so it cannot
// escape the upload namespace. Both slash styles count as separators.
func SanitizeKey(name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", "/":
		return "", ErrInvalidKey
	}
	if strings.ContainsRune(base, 0) {
		return "", ErrInvalidKey
	}
	return base, nil
}
