// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for chatbot
// history, including the aggregate queries behind the analytics endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// IntentCount is one row of the intent histogram.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

// CreateChatHistory inserts e.
func CreateChatHistory(ctx context.Context, db *gorm.DB, e *domain.ChatHistoryEntry) error {
	return db.WithContext(ctx).Create(e).Error
}

// GetChatHistory fetches entry id, or ErrNotFound.
func GetChatHistory(ctx context.Context, db *gorm.DB, id uint) (*domain.ChatHistoryEntry, error) {
	var e domain.ChatHistoryEntry
	if err := db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListChatHistoryBySession returns a session's turns in chronological order.
func ListChatHistoryBySession(ctx context.Context, db *gorm.DB, sessionID string) ([]domain.ChatHistoryEntry, error) {
	out := []domain.ChatHistoryEntry{}
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Order("id asc").
		Find(&out).Error
	return out, err
}

// ListChatHistoryPage returns a page of all turns, newest first.
func ListChatHistoryPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatHistoryEntry, error) {
	out := []domain.ChatHistoryEntry{}
	err := db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountChatHistorySince counts turns created at or after since.
func CountChatHistorySince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ChatHistoryEntry{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// SessionIDsSince returns the distinct session ids with turns at or after since.
func SessionIDsSince(ctx context.Context, db *gorm.DB, since time.Time) ([]string, error) {
	ids := []string{}
	err := db.WithContext(ctx).
		Model(&domain.ChatHistoryEntry{}).
		Where("created_at >= ?", since).
		Distinct().
		Pluck("session_id", &ids).Error
	return ids, err
}

// TopIntentsSince returns up to limit intents seen at or after since, by
// count descending and then by intent name. Turns without an intent are skipped.
func TopIntentsSince(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]IntentCount, error) {
	out := []IntentCount{}
	err := db.WithContext(ctx).
		Model(&domain.ChatHistoryEntry{}).
		Select("intent, COUNT(*) AS count").
		Where("created_at >= ? AND intent IS NOT NULL AND intent <> ''", since).
		Group("intent").
		Order("COUNT(*) desc").
		Order("intent asc").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// DeleteChatHistoryBefore removes turns created before cutoff.
func DeleteChatHistoryBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&domain.ChatHistoryEntry{})
	return res.RowsAffected, res.Error
}
