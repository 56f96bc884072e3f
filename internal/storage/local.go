package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files in a directory on disk. A file saved as dir/name is
// published as PublicPrefix + "/" + dir + "/" + name.
type Local struct {
	Root         string
	PublicPrefix string
}

// NewLocal returns a Local store rooted at root, creating the directory.
func NewLocal(root, publicPrefix string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Local{Root: root, PublicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

// Save writes r atomically (temp file + rename) and returns its public path.
func (l *Local) Save(_ context.Context, dir, name string, r io.Reader, _ int64, _ string) (string, error) {
	key, err := joinKey(dir, name)
	if err != nil {
		return "", err
	}
	if err := WriteFileAtomic(filepath.Join(l.Root, filepath.FromSlash(key)), r); err != nil {
		return "", err
	}
	return l.PublicPrefix + "/" + key, nil
}

// Remove deletes the file behind publicPath when it lives under Root.
func (l *Local) Remove(_ context.Context, publicPath string) error {
	p, ok := l.resolve(publicPath)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Manages reports whether publicPath is a file under PublicPrefix.
func (l *Local) Manages(publicPath string) bool {
	_, ok := l.resolve(publicPath)
	return ok
}

// resolve maps a public path to a file under Root. Anything that escapes Root
// (.., deep nesting, foreign prefixes) is rejected.
func (l *Local) resolve(publicPath string) (string, bool) {
	prefix := l.PublicPrefix + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return "", false
	}
	parts, ok := splitKey(strings.TrimPrefix(publicPath, prefix))
	if !ok {
		return "", false
	}
	return filepath.Join(append([]string{l.Root}, parts...)...), true
}

// WriteFileAtomic writes r to dst through a temp file in the same directory
// followed by a rename, so readers never observe a partial file.
func WriteFileAtomic(dst string, r io.Reader) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
