// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for FAQ entries.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// ListFAQ returns all FAQ entries in insertion order (id ascending).
func ListFAQ(ctx context.Context, db *gorm.DB) ([]domain.FAQItem, error) {
	out := []domain.FAQItem{}
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// CreateFAQ inserts a question/answer pair.
func CreateFAQ(ctx context.Context, db *gorm.DB, question, answer string) (*domain.FAQItem, error) {
	f := &domain.FAQItem{Question: question, Answer: answer}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFAQ replaces the question and answer of entry id and returns the
// stored row, or ErrNotFound.
func UpdateFAQ(ctx context.Context, db *gorm.DB, id uint, question, answer string) (*domain.FAQItem, error) {
	var out domain.FAQItem
	vals := domain.FAQItem{Question: question, Answer: answer}
	if err := updateByID(ctx, db, &out, id, vals, "question", "answer"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFAQ removes entry id. Deleting a missing id is not an error.
func DeleteFAQ(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return deleteByID(ctx, db, &domain.FAQItem{}, id)
}
