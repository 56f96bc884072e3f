// Package services – FAQService
//
// FAQService manages question/answer pairs and serves keyword search over
// them. The search index is built lazily from the table and dropped on every
// mutation, so the next search sees the current rows.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/repo"
	"github.com/tarumenyan/studio-backend/internal/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FAQMatch is one search hit.
type FAQMatch struct {
	FAQ   domain.FAQItem `json:"faq"`
	Score float64        `json:"score"`
}

// FAQService provides FAQ CRUD and search.
type FAQService struct {
	DB *gorm.DB

	mu    sync.RWMutex
	idx   *search.Index
	byID  map[uint]domain.FAQItem
	dirty bool
}

// NewFAQService constructs a FAQService.
func NewFAQService(db *gorm.DB) *FAQService {
	return &FAQService{DB: db, dirty: true}
}

// List returns every entry ordered by id.
func (s *FAQService) List(ctx context.Context) ([]domain.FAQItem, error) {
	return repo.ListFAQ(ctx, s.DB)
}

// Create inserts an entry. Question and answer are both required.
func (s *FAQService) Create(ctx context.Context, question, answer string) (*domain.FAQItem, error) {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "Create")
	defer span.End()

	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, invalid("question and answer are required")
	}
	f, err := repo.CreateFAQ(ctx, s.DB, question, answer)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return f, nil
}

// Update replaces question and answer of entry id.
func (s *FAQService) Update(ctx context.Context, id uint, question, answer string) (*domain.FAQItem, error) {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.Int("faq.id", int(id))),
	)
	defer span.End()

	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, invalid("question and answer are required")
	}
	f, err := repo.UpdateFAQ(ctx, s.DB, id, question, answer)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return f, nil
}

// Delete removes entry id; a missing id is not an error.
func (s *FAQService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int("faq.id", int(id))),
	)
	defer span.End()

	if _, err := repo.DeleteFAQ(ctx, s.DB, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Search ranks entries by word overlap between q and their questions and
// returns at most k hits, best first.
func (s *FAQService) Search(ctx context.Context, q string, k int) ([]FAQMatch, error) {
	tr := otel.Tracer("services/FAQService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.Int("k", k)),
	)
	defer span.End()

	if strings.TrimSpace(q) == "" {
		return []FAQMatch{}, nil
	}
	idx, byID, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	hits := idx.TopK(q, k)
	out := make([]FAQMatch, 0, len(hits))
	for _, h := range hits {
		if f, ok := byID[h.ID]; ok {
			out = append(out, FAQMatch{FAQ: f, Score: h.Score})
		}
	}
	span.SetAttributes(attribute.Int("hits", len(out)))
	return out, nil
}

// Best returns the top hit for q, or nil when nothing overlaps.
func (s *FAQService) Best(ctx context.Context, q string) (*FAQMatch, error) {
	hits, err := s.Search(ctx, q, 1)
	if err != nil || len(hits) == 0 {
		return nil, err
	}
	return &hits[0], nil
}

func (s *FAQService) invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *FAQService) index(ctx context.Context) (*search.Index, map[uint]domain.FAQItem, error) {
	s.mu.RLock()
	if !s.dirty && s.idx != nil {
		idx, byID := s.idx, s.byID
		s.mu.RUnlock()
		return idx, byID, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty && s.idx != nil {
		return s.idx, s.byID, nil
	}
	items, err := repo.ListFAQ(ctx, s.DB)
	if err != nil {
		return nil, nil, err
	}
	docs := make([]search.Document, 0, len(items))
	byID := make(map[uint]domain.FAQItem, len(items))
	for _, f := range items {
		docs = append(docs, search.Document{ID: f.ID, Text: f.Question})
		byID[f.ID] = f
	}
	s.idx = search.NewIndex(docs, search.WithStopwords(search.IndonesianStopwords))
	s.byID = byID
	s.dirty = false
	return s.idx, s.byID, nil
}
