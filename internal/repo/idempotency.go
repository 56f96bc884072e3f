package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// ErrDuplicate is returned when an insert hits a unique index: a second
// idempotency record for one (scope, key), or a reused user email.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency loads the record for (scope, key) that is still valid at
// now. Blank keys and expired records yield ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	rec := new(domain.Idempotency)
	// struct conditions get quoted columns, and "key" is reserved in MySQL
	err := db.WithContext(ctx).
		Where(&domain.Idempotency{Scope: scope, Key: key}).
		Where("expires_at > ?", now).
		Take(rec).Error
	if err != nil {
		return nil, err // gorm.ErrRecordNotFound is ErrNotFound
	}
	return rec, nil
}

// CreateIdempotency remembers that key produced resourceID with status for
// ttl. A concurrent first use of the same key loses with ErrDuplicate.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	created := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:         uuid.NewString(),
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  created,
		ExpiresAt:  created.Add(ttl),
	}
	err := db.WithContext(ctx).Create(rec).Error
	switch {
	case err == nil:
		return rec, nil
	case isUniqueViolation(err):
		return nil, ErrDuplicate
	default:
		return nil, err
	}
}

// PurgeExpiredIdempotency deletes records that expired at or before now.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}

// uniqueViolationText covers drivers whose errors gorm does not translate to
// gorm.ErrDuplicatedKey (glebarez/sqlite in particular).
var uniqueViolationText = []string{
	"unique constraint failed",
	"constraint failed: unique",
	"duplicate key value", // postgres
	"duplicate entry",     // mysql
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range uniqueViolationText {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
