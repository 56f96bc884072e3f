package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// tableVersion returns the row count of T's table and its newest updated_at.
// Both change on any insert, update or delete, which is all a list ETag needs.
// latest is nil for an empty table.
func tableVersion[T any](ctx context.Context, db *gorm.DB) (n int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(new(T))
	if err = q.Count(&n).Error; err != nil || n == 0 {
		return 0, nil, err
	}
	// Ordering instead of MAX(): sqlite hands aggregates back as TEXT.
	var stamps []time.Time
	err = db.WithContext(ctx).Model(new(T)).
		Order("updated_at DESC").
		Limit(1).
		Pluck("updated_at", &stamps).Error
	if err != nil {
		return 0, nil, err
	}
	if len(stamps) == 1 {
		latest = &stamps[0]
	}
	return n, latest, nil
}

// GalleryStats versions the gallery list.
func GalleryStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableVersion[domain.GalleryItem](ctx, db)
}

// ReviewsStats versions the reviews list.
func ReviewsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return tableVersion[domain.Review](ctx, db)
}
