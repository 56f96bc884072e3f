package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

func TestGalleryStats_MissingTable(t *testing.T) {
	db := newTestDB(t)
	if _, _, err := GalleryStats(context.Background(), db); err == nil {
		t.Fatal("want an error when the gallery table does not exist")
	}
}

func TestReviewsStats_Empty(t *testing.T) {
	db := newTestDB(t, &domain.GalleryItem{}, &domain.Review{})
	n, latest, err := ReviewsStats(context.Background(), db)
	if err != nil || n != 0 || latest != nil {
		t.Fatalf("got (%d, %v, %v), want (0, nil, nil)", n, latest, err)
	}
}

func TestGalleryStats_TracksNewestUpdate(t *testing.T) {
	db := newTestDB(t, &domain.GalleryItem{}, &domain.Review{})
	ctx := context.Background()

	base := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	items := []*domain.GalleryItem{
		{Title: "Akad", Category: "wedding", Image: "/uploads/gallery/a.jpg", CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{Title: "Resepsi", Category: "wedding", Image: "/uploads/gallery/b.jpg", CreatedAt: base, UpdatedAt: base},
	}
	for _, g := range items {
		if err := db.Create(g).Error; err != nil {
			t.Fatal(err)
		}
	}

	n, latest, err := GalleryStats(ctx, db)
	if err != nil || n != 2 || latest == nil || !latest.Equal(base.Add(3*time.Hour)) {
		t.Fatalf("got (%d, %v, %v)", n, latest, err)
	}

	if err := db.Delete(items[0]).Error; err != nil {
		t.Fatal(err)
	}
	n, latest, err = GalleryStats(ctx, db)
	if err != nil || n != 1 || latest == nil || !latest.Equal(base) {
		t.Fatalf("after delete got (%d, %v, %v)", n, latest, err)
	}
}
