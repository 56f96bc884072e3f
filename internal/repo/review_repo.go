// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for reviews.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// ListReviews returns all reviews, newest first.
func ListReviews(ctx context.Context, db *gorm.DB) ([]domain.Review, error) {
	out := []domain.Review{}
	err := db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&out).Error
	return out, err
}

// GetReview fetches review id, or ErrNotFound.
func GetReview(ctx context.Context, db *gorm.DB, id uint) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts r.
func CreateReview(ctx context.Context, db *gorm.DB, r *domain.Review) error {
	return db.WithContext(ctx).Create(r).Error
}

// UpdateReview overwrites every editable column of review id with r's values
// and returns the stored row, or ErrNotFound. A nil r.Image clears the image.
func UpdateReview(ctx context.Context, db *gorm.DB, id uint, r domain.Review) (*domain.Review, error) {
	var out domain.Review
	cols := []string{"customer_name", "service_type", "location", "rating", "comment", "image", "date"}
	if err := updateByID(ctx, db, &out, id, r, cols...); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReview removes review id.
func DeleteReview(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return deleteByID(ctx, db, &domain.Review{}, id)
}
