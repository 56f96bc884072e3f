// Package storage persists uploaded files (gallery photos, review images) and
// maps them to the public paths stored in the database. Two backends exist:
// Local writes into the managed upload directory served under /uploads, and
// S3 writes to an S3-compatible bucket through minio-go.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrOutsideRoot is returned for a public path that does not belong to the store.
var ErrOutsideRoot = errors.New("path outside managed upload directory")

// Store saves and removes uploaded files.
type Store interface {
	// Save stores r as dir/name and returns the public path to persist.
	// dir is a single path segment such as "gallery" and may be empty.
	Save(ctx context.Context, dir, name string, r io.Reader, size int64, contentType string) (string, error)
	// Remove deletes the file behind publicPath. Paths the store does not
	// manage are left alone and return nil; a file already gone is not an error.
	Remove(ctx context.Context, publicPath string) error
	// Manages reports whether publicPath points into this store.
	Manages(publicPath string) bool
}

// extByType maps accepted image content types to file extensions.
var extByType = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"application/pdf": ".pdf",
}

// NewName builds a collision-resistant file name
// "<prefix>-<unixmillis>-<random><ext>". The extension comes from the content
// type when known, otherwise from the original file name.
func NewName(prefix, originalName, contentType string, now time.Time) string {
	ext, ok := extByType[strings.ToLower(contentType)]
	if !ok {
		if i := strings.LastIndexByte(originalName, '.'); i >= 0 && i < len(originalName)-1 {
			ext = strings.ToLower(originalName[i:])
		}
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s-%d-%s%s", prefix, now.UnixMilli(), random, ext)
}

// validSegment reports whether s is a plain file or directory name.
func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

// joinKey joins an optional dir with name after validating both.
func joinKey(dir, name string) (string, error) {
	if !validSegment(name) || (dir != "" && !validSegment(dir)) {
		return "", ErrOutsideRoot
	}
	if dir == "" {
		return name, nil
	}
	return dir + "/" + name, nil
}

// splitKey validates a relative key of one or two segments.
func splitKey(key string) ([]string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) == 0 || len(parts) > 2 {
		return nil, false
	}
	for _, p := range parts {
		if !validSegment(p) {
			return nil, false
		}
	}
	return parts, true
}
