package domain

import "time"

// Idempotency represents a recorded result of a previously processed request,
// keyed by (scope, key). Scope names the endpoint (e.g. "chat_history") so the
// same client key can be reused across endpoints. It lets a retried POST return
// the originally created row without inserting it twice.
type Idempotency struct {
	ID         string    `gorm:"size:36;primaryKey"`
	Scope      string    `gorm:"size:64;not null;uniqueIndex:ux_scope_key,priority:1"`
	Key        string    `gorm:"size:255;not null;uniqueIndex:ux_scope_key,priority:2"`
	ResourceID string    `gorm:"size:64;not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
