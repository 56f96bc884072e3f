// Package services – PackageService
//
// PackageService manages priced offerings and the downloadable pricelist PDF.
// The PDF always lands under a fixed file name in the documents directory; it
// is written through a temp file and a rename so concurrent uploads never
// leave a torn file behind.
package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/repo"
	"github.com/tarumenyan/studio-backend/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PackageInput is the editable part of a package.
type PackageInput struct {
	Name        string
	Price       string
	Description string
	Features    []string
	Popular     bool
}

// PackageService provides package CRUD and pricelist storage.
type PackageService struct {
	DB *gorm.DB

	// DocumentsDir receives the pricelist as PricelistFilename.
	DocumentsDir      string
	PricelistFilename string
	// PublicCopy, when set, is a second path the pricelist is copied to.
	PublicCopy string
}

// NewPackageService constructs a PackageService.
func NewPackageService(db *gorm.DB, documentsDir, pricelistFilename, publicCopy string) *PackageService {
	if pricelistFilename == "" {
		pricelistFilename = "Tarumenyan Pricelist.pdf"
	}
	return &PackageService{
		DB:                db,
		DocumentsDir:      documentsDir,
		PricelistFilename: pricelistFilename,
		PublicCopy:        publicCopy,
	}
}

// List returns every package ordered by id.
func (s *PackageService) List(ctx context.Context) ([]domain.Package, error) {
	return repo.ListPackages(ctx, s.DB)
}

// Create inserts a package.
func (s *PackageService) Create(ctx context.Context, in PackageInput) (*domain.Package, error) {
	tr := otel.Tracer("services/PackageService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	p, err := buildPackage(in)
	if err != nil {
		return nil, err
	}
	if err := repo.CreatePackage(ctx, s.DB, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites package id with in.
func (s *PackageService) Update(ctx context.Context, id uint, in PackageInput) (*domain.Package, error) {
	tr := otel.Tracer("services/PackageService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int("package.id", int(id))),
	)
	defer span.End()

	p, err := buildPackage(in)
	if err != nil {
		return nil, err
	}
	out, err := repo.UpdatePackage(ctx, s.DB, id, p)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes package id; a missing id is not an error.
func (s *PackageService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/PackageService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("package.id", int(id))),
	)
	defer span.End()

	_, err := repo.DeletePackage(ctx, s.DB, id)
	return err
}

// UploadPricelist replaces the pricelist PDF and, when configured, its public
// copy. It returns the path of the primary file.
func (s *PackageService) UploadPricelist(ctx context.Context, up *Upload) (string, error) {
	tr := otel.Tracer("services/PackageService")
	_, span := tr.Start(ctx, "UploadPricelist")
	defer span.End()

	if up == nil {
		return "", invalid("Tidak ada file yang diunggah")
	}
	if ct := strings.ToLower(up.ContentType); ct != "application/pdf" {
		return "", invalid("Hanya file PDF yang diperbolehkan")
	}

	dst := filepath.Join(s.DocumentsDir, s.PricelistFilename)
	if err := storage.WriteFileAtomic(dst, up.Body); err != nil {
		return "", err
	}
	if s.PublicCopy != "" {
		if err := copyFileAtomic(dst, s.PublicCopy); err != nil {
			return "", ErrPricelistCopy
		}
	}
	return dst, nil
}

func copyFileAtomic(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	return storage.WriteFileAtomic(dst, f)
}

func buildPackage(in PackageInput) (domain.Package, error) {
	p := domain.Package{
		Name:        strings.TrimSpace(in.Name),
		Price:       strings.TrimSpace(in.Price),
		Description: strings.TrimSpace(in.Description),
		Popular:     in.Popular,
	}
	if p.Name == "" || p.Price == "" {
		return p, invalid("name and price are required")
	}
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	p.Features = features
	return p, nil
}
