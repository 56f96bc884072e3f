// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for gallery photos.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// ListGallery returns all photos, newest first.
func ListGallery(ctx context.Context, db *gorm.DB) ([]domain.GalleryItem, error) {
	out := []domain.GalleryItem{}
	err := db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&out).Error
	return out, err
}

// GetGallery fetches photo id, or ErrNotFound.
func GetGallery(ctx context.Context, db *gorm.DB, id uint) (*domain.GalleryItem, error) {
	var g domain.GalleryItem
	if err := db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGallery inserts a photo row.
func CreateGallery(ctx context.Context, db *gorm.DB, title, category, image string) (*domain.GalleryItem, error) {
	g := &domain.GalleryItem{Title: title, Category: category, Image: image}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGallery rewrites title, category and image of photo id and returns the
// stored row, or ErrNotFound.
func UpdateGallery(ctx context.Context, db *gorm.DB, id uint, title, category, image string) (*domain.GalleryItem, error) {
	var out domain.GalleryItem
	vals := domain.GalleryItem{Title: title, Category: category, Image: image}
	if err := updateByID(ctx, db, &out, id, vals, "title", "category", "image"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteGallery removes photo id.
func DeleteGallery(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return deleteByID(ctx, db, &domain.GalleryItem{}, id)
}
