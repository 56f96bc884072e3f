// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for priced packages.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// ListPackages returns all packages ordered by id ascending.
func ListPackages(ctx context.Context, db *gorm.DB) ([]domain.Package, error) {
	out := []domain.Package{}
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// CreatePackage inserts p.
func CreatePackage(ctx context.Context, db *gorm.DB, p *domain.Package) error {
	return db.WithContext(ctx).Create(p).Error
}

// UpdatePackage overwrites every editable column of package id with p's
// values, including zero values such as popular=false, and returns the stored
// row, or ErrNotFound.
func UpdatePackage(ctx context.Context, db *gorm.DB, id uint, p domain.Package) (*domain.Package, error) {
	var out domain.Package
	if err := updateByID(ctx, db, &out, id, p, "name", "price", "description", "features", "is_popular"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePackage removes package id.
func DeletePackage(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return deleteByID(ctx, db, &domain.Package{}, id)
}
