// Package services – GalleryService
//
// GalleryService manages portfolio photos. Every mutation that touches both
// a file and a row writes the new file first, updates the row, and removes
// the superseded file only after the row write succeeded.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/repo"
	"github.com/tarumenyan/studio-backend/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GalleryService provides gallery CRUD backed by a file store.
type GalleryService struct {
	DB    *gorm.DB
	files files
}

// NewGalleryService constructs a GalleryService. Photos are stored under the
// "gallery" directory of store with a "gallery-" name prefix.
func NewGalleryService(db *gorm.DB, store storage.Store, onFileError FileErrorFunc) *GalleryService {
	return &GalleryService{
		DB:    db,
		files: files{store: store, dir: "gallery", prefix: "gallery", onError: onFileError},
	}
}

// List returns every photo, newest first.
func (s *GalleryService) List(ctx context.Context) ([]domain.GalleryItem, error) {
	return repo.ListGallery(ctx, s.DB)
}

// Stats returns the row count and latest update time, used for ETags.
func (s *GalleryService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.GalleryStats(ctx, s.DB)
}

// Create stores img and inserts a row pointing at it.
func (s *GalleryService) Create(ctx context.Context, title, category string, img *Upload) (*domain.GalleryItem, error) {
	tr := otel.Tracer("services/GalleryService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("gallery.category", category)),
	)
	defer span.End()

	if img == nil {
		return nil, invalid("Image is required")
	}
	title, category = strings.TrimSpace(title), normalizeCategory(category)
	if title == "" || category == "" {
		return nil, invalid("title and category are required")
	}
	if !domain.ValidCategory(category) {
		return nil, invalid("category must be one of wedding, prewedding, lainnya")
	}

	var out *domain.GalleryItem
	err := s.files.replace(ctx, img, "", func(path string) error {
		g, err := repo.CreateGallery(ctx, s.DB, title, category, path)
		out = g
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites photo id. Empty title or category keep the stored value;
// a nil img keeps the stored image.
func (s *GalleryService) Update(ctx context.Context, id uint, title, category string, img *Upload) (*domain.GalleryItem, error) {
	tr := otel.Tracer("services/GalleryService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int("gallery.id", int(id))),
	)
	defer span.End()

	cur, err := repo.GetGallery(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(title); t != "" {
		cur.Title = t
	}
	if c := normalizeCategory(category); c != "" {
		if !domain.ValidCategory(c) {
			return nil, invalid("category must be one of wedding, prewedding, lainnya")
		}
		cur.Category = c
	}

	var out *domain.GalleryItem
	write := func(path string) error {
		g, err := repo.UpdateGallery(ctx, s.DB, id, cur.Title, cur.Category, path)
		out = g
		return err
	}
	if img == nil {
		err = write(cur.Image)
	} else {
		err = s.files.replace(ctx, img, cur.Image, write)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes photo id and then its file. A missing id is not an error.
func (s *GalleryService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/GalleryService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("gallery.id", int(id))),
	)
	defer span.End()

	cur, err := repo.GetGallery(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := repo.DeleteGallery(ctx, s.DB, id); err != nil {
		return err
	}
	s.files.remove(ctx, "remove_deleted", cur.Image)
	return nil
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
