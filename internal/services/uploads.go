package services

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/tarumenyan/studio-backend/internal/storage"
)

// Upload is a file accepted by the upload middleware and handed to a service.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileErrorFunc receives file clean-up failures that do not fail the request
// (the row write already succeeded). op is "remove_old", "remove_new" or
// "remove_deleted".
type FileErrorFunc func(op, path string, err error)

// files bundles the store with the clean-up reporting shared by the gallery
// and review services.
type files struct {
	store   storage.Store
	dir     string
	prefix  string
	now     func() time.Time
	onError FileErrorFunc
}

func (f *files) save(ctx context.Context, up *Upload) (string, error) {
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	name := storage.NewName(f.prefix, up.Name, up.ContentType, now())
	return f.store.Save(ctx, f.dir, name, up.Body, up.Size, up.ContentType)
}

// owns reports whether p is a stored file in this resource's own directory.
// Files of other resources sharing the store are never touched.
func (f *files) owns(p string) bool {
	return p != "" && f.store.Manages(p) && path.Base(path.Dir(p)) == f.dir
}

// remove deletes p when owns(p). Failures go to onError.
func (f *files) remove(ctx context.Context, op, p string) {
	if !f.owns(p) {
		return
	}
	if err := f.store.Remove(ctx, p); err != nil && f.onError != nil {
		f.onError(op, p, err)
	}
}

// replace runs write with the public path of a freshly stored upload. The new
// file is removed when write fails; old is removed only after write succeeds.
func (f *files) replace(ctx context.Context, up *Upload, old string, write func(newPath string) error) error {
	newPath, err := f.save(ctx, up)
	if err != nil {
		return err
	}
	if err := write(newPath); err != nil {
		f.remove(ctx, "remove_new", newPath)
		return err
	}
	if old != "" && old != newPath {
		f.remove(ctx, "remove_old", old)
	}
	return nil
}
