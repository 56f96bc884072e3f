// Package services – ReviewService
//
// ReviewService manages customer testimonials with an optional photo. Form
// values arrive as raw strings; rating and date are parsed and validated here.
package services

import (
	"context"
	"errors"
	"strconv"
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

// DefaultRating is used when a new review carries no rating.
const DefaultRating = 5

// ReviewInput carries the submitted review fields as raw form values.
type ReviewInput struct {
	CustomerName string
	ServiceType  string
	Location     string
	Rating       string
	Comment      string
	Date         string
}

// ReviewService provides review CRUD backed by a file store.
type ReviewService struct {
	DB    *gorm.DB
	Now   func() time.Time
	files files
}

// NewReviewService constructs a ReviewService. Photos are stored under the
// "reviews" directory of store with a "review-" name prefix.
func NewReviewService(db *gorm.DB, store storage.Store, onFileError FileErrorFunc) *ReviewService {
	s := &ReviewService{DB: db, Now: time.Now}
	s.files = files{store: store, dir: "reviews", prefix: "review", now: s.now, onError: onFileError}
	return s
}

func (s *ReviewService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns every review, newest first.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return repo.ListReviews(ctx, s.DB)
}

// Stats returns the row count and latest update time, used for ETags.
func (s *ReviewService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ReviewsStats(ctx, s.DB)
}

// Create inserts a review, storing img first when present.
func (s *ReviewService) Create(ctx context.Context, in ReviewInput, img *Upload) (*domain.Review, error) {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	r := domain.Review{Rating: DefaultRating, Date: s.now()}
	if err := s.apply(&r, in); err != nil {
		return nil, err
	}
	if r.CustomerName == "" {
		return nil, invalid("customer_name is required")
	}

	if img == nil {
		if err := repo.CreateReview(ctx, s.DB, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}
	err := s.files.replace(ctx, img, "", func(path string) error {
		r.Image = &path
		return repo.CreateReview(ctx, s.DB, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update rewrites review id. Empty fields keep their stored values; a nil img
// keeps the stored image.
func (s *ReviewService) Update(ctx context.Context, id uint, in ReviewInput, img *Upload) (*domain.Review, error) {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int("review.id", int(id))),
	)
	defer span.End()

	cur, err := repo.GetReview(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	next := *cur
	if err := s.apply(&next, in); err != nil {
		return nil, err
	}

	var out *domain.Review
	write := func(path *string) error {
		next.Image = path
		r, err := repo.UpdateReview(ctx, s.DB, id, next)
		out = r
		return err
	}
	if img == nil {
		err = write(cur.Image)
	} else {
		old := ""
		if cur.Image != nil {
			old = *cur.Image
		}
		err = s.files.replace(ctx, img, old, func(path string) error { return write(&path) })
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes review id and then its photo. A missing id is not an error.
func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/ReviewService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("review.id", int(id))),
	)
	defer span.End()

	cur, err := repo.GetReview(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := repo.DeleteReview(ctx, s.DB, id); err != nil {
		return err
	}
	if cur.Image != nil {
		s.files.remove(ctx, "remove_deleted", *cur.Image)
	}
	return nil
}

// apply copies the non-empty fields of in onto r.
func (s *ReviewService) apply(r *domain.Review, in ReviewInput) error {
	if v := strings.TrimSpace(in.CustomerName); v != "" {
		r.CustomerName = v
	}
	if v := strings.TrimSpace(in.ServiceType); v != "" {
		r.ServiceType = v
	}
	if v := strings.TrimSpace(in.Location); v != "" {
		r.Location = v
	}
	if v := strings.TrimSpace(in.Comment); v != "" {
		r.Comment = v
	}
	if v := strings.TrimSpace(in.Rating); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			return invalid("rating must be an integer between 1 and 5")
		}
		r.Rating = n
	}
	if v := strings.TrimSpace(in.Date); v != "" {
		d, err := ParseReviewDate(v)
		if err != nil {
			return invalid("date must be YYYY-MM-DD or RFC 3339")
		}
		r.Date = d
	}
	return nil
}

// ParseReviewDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseReviewDate(v string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, v); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, v)
}
