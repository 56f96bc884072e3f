// Package services – ChatHistoryService
//
// ChatHistoryService records chatbot turns and serves the admin views over
// them: the full log, trailing-window analytics and age-based cleanup.
//
// Creation honours an optional idempotency key. The turn and its idempotency
// record are written in one transaction, so a retried request either replays
// the original row or creates exactly one new row.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
	"github.com/tarumenyan/studio-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatHistoryScope names chat-history records in the idempotency table.
const ChatHistoryScope = "chat_history"

// Defaults and caps for the admin views.
const (
	DefaultHistoryLimit  = 100
	MaxHistoryLimit      = 1000
	DefaultAnalyticsDays = 7
	TopIntentsLimit      = 10
)

// ChatHistoryInput is one turn as submitted by the client.
type ChatHistoryInput struct {
	SessionID   string
	UserMessage string
	BotResponse string
	Intent      string
	Confidence  *float64
	UserIP      string
	UserAgent   string
}

// Analytics summarizes the turns of a trailing window.
type Analytics struct {
	PeriodDays            int                `json:"period_days"`
	TotalMessages         int64              `json:"total_messages"`
	UniqueSessions        int                `json:"unique_sessions"`
	AvgMessagesPerSession string             `json:"avg_messages_per_session"`
	TopIntents            []repo.IntentCount `json:"top_intents"`
}

// ChatHistoryService provides chat-history persistence and reporting.
type ChatHistoryService struct {
	DB  *gorm.DB
	TTL time.Duration // lifetime of idempotency records
	Now func() time.Time

	// OnPurgeError receives idempotency purge failures during Cleanup; the
	// deleted turn count is still returned.
	OnPurgeError func(error)
}

// MaxWindowDays bounds the days argument of Analytics and Cleanup.
const MaxWindowDays = 36500

// NewChatHistoryService constructs a ChatHistoryService.
func NewChatHistoryService(db *gorm.DB, idempotencyTTL time.Duration) *ChatHistoryService {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &ChatHistoryService{DB: db, TTL: idempotencyTTL, Now: time.Now}
}

// now returns s.Now() when set, otherwise time.Now().
func (s *ChatHistoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create stores a turn. With a non-empty key, a second call with the same key
// returns the first row and replayed=true.
func (s *ChatHistoryService) Create(ctx context.Context, in ChatHistoryInput, key string) (entry *domain.ChatHistoryEntry, replayed bool, err error) {
	tr := otel.Tracer("services/ChatHistoryService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("session.id", in.SessionID)),
	)
	defer span.End()

	if strings.TrimSpace(in.SessionID) == "" || strings.TrimSpace(in.UserMessage) == "" || strings.TrimSpace(in.BotResponse) == "" {
		return nil, false, invalid("session_id, user_message, and bot_response are required")
	}
	key = strings.TrimSpace(key)

	if key != "" {
		if prev, err := s.replay(ctx, key); err != nil || prev != nil {
			return prev, prev != nil, err
		}
	}

	e := &domain.ChatHistoryEntry{
		SessionID:   in.SessionID,
		UserMessage: in.UserMessage,
		BotResponse: in.BotResponse,
		Confidence:  in.Confidence,
		UserIP:      in.UserIP,
		UserAgent:   in.UserAgent,
	}
	if v := strings.TrimSpace(in.Intent); v != "" {
		e.Intent = &v
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateChatHistory(ctx, tx, e); err != nil {
			return err
		}
		if key == "" {
			return nil
		}
		_, err := repo.CreateIdempotency(ctx, tx, ChatHistoryScope, key, strconv.FormatUint(uint64(e.ID), 10), 201, s.TTL)
		return err
	})
	if errors.Is(err, repo.ErrDuplicate) {
		// lost a race with a concurrent request carrying the same key
		prev, rerr := s.replay(ctx, key)
		if rerr != nil {
			return nil, false, rerr
		}
		if prev != nil {
			return prev, true, nil
		}
	}
	if err != nil {
		return nil, false, err
	}
	return e, false, nil
}

// HasReplay reports whether key maps to a stored turn that has not expired.
func (s *ChatHistoryService) HasReplay(ctx context.Context, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, ChatHistoryScope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *ChatHistoryService) replay(ctx context.Context, key string) (*domain.ChatHistoryEntry, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, ChatHistoryScope, key, s.now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(rec.ResourceID, 10, 64)
	if err != nil {
		return nil, nil
	}
	e, err := repo.GetChatHistory(ctx, s.DB, uint(id))
	if errors.Is(err, repo.ErrNotFound) {
		// the turn was cleaned up; treat the key as fresh
		return nil, nil
	}
	return e, err
}

// BySession returns a session's turns in chronological order.
func (s *ChatHistoryService) BySession(ctx context.Context, sessionID string) ([]domain.ChatHistoryEntry, error) {
	tr := otel.Tracer("services/ChatHistoryService")
	ctx, span := tr.Start(ctx, "BySession",
		trace.WithAttributes(attribute.String("session.id", sessionID)),
	)
	defer span.End()

	return repo.ListChatHistoryBySession(ctx, s.DB, sessionID)
}

// All returns a page of turns, newest first. A non-positive limit means the
// default; limits above MaxHistoryLimit are capped.
func (s *ChatHistoryService) All(ctx context.Context, limit, offset int) ([]domain.ChatHistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	tr := otel.Tracer("services/ChatHistoryService")
	ctx, span := tr.Start(ctx, "All",
		trace.WithAttributes(attribute.Int("limit", limit), attribute.Int("offset", offset)),
	)
	defer span.End()

	return repo.ListChatHistoryPage(ctx, s.DB, offset, limit)
}

// Analytics aggregates the last days days with three queries: the turn
// count, the distinct session ids and the intent histogram.
func (s *ChatHistoryService) Analytics(ctx context.Context, days int) (*Analytics, error) {
	if err := checkWindow(days); err != nil {
		return nil, err
	}
	tr := otel.Tracer("services/ChatHistoryService")
	ctx, span := tr.Start(ctx, "Analytics",
		trace.WithAttributes(attribute.Int("days", days)),
	)
	defer span.End()

	since := s.now().AddDate(0, 0, -days)

	total, err := repo.CountChatHistorySince(ctx, s.DB, since)
	if err != nil {
		return nil, err
	}
	sessions, err := repo.SessionIDsSince(ctx, s.DB, since)
	if err != nil {
		return nil, err
	}
	intents, err := repo.TopIntentsSince(ctx, s.DB, since, TopIntentsLimit)
	if err != nil {
		return nil, err
	}

	return &Analytics{
		PeriodDays:            days,
		TotalMessages:         total,
		UniqueSessions:        len(sessions),
		AvgMessagesPerSession: averagePerSession(total, len(sessions)),
		TopIntents:            intents,
	}, nil
}

func averagePerSession(total int64, sessions int) string {
	if sessions == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(total)/float64(sessions))
}

// Cleanup removes turns older than days days and expired idempotency
// records. It returns the number of turns removed.
func (s *ChatHistoryService) Cleanup(ctx context.Context, days int) (int64, error) {
	if err := checkWindow(days); err != nil {
		return 0, err
	}
	tr := otel.Tracer("services/ChatHistoryService")
	ctx, span := tr.Start(ctx, "Cleanup",
		trace.WithAttributes(attribute.Int("days", days)),
	)
	defer span.End()

	now := s.now()
	n, err := repo.DeleteChatHistoryBefore(ctx, s.DB, now.AddDate(0, 0, -days))
	if err != nil {
		return 0, err
	}
	if _, err := repo.PurgeExpiredIdempotency(ctx, s.DB, now.UTC()); err != nil {
		span.RecordError(err)
		if s.OnPurgeError != nil {
			s.OnPurgeError(err)
		}
	}
	span.SetAttributes(attribute.Int64("deleted", n))
	return n, nil
}

func checkWindow(days int) error {
	if days < 0 || days > MaxWindowDays {
		return invalid(fmt.Sprintf("days must be an integer between 0 and %d", MaxWindowDays))
	}
	return nil
}
