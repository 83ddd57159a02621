package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey is the recorded outcome of a bill creation sent with an
// Idempotency-Key header. RequestHash fingerprints the body so a key can
// only ever replay the request it was first used with.
type IdempotencyKey struct {
	ID          uuid.UUID `gorm:"size:36;primaryKey"`
	AdminID     int64     `gorm:"not null;uniqueIndex:idx_idempotency_admin_key,priority:1"`
	Key         string    `gorm:"column:idempotency_key;size:255;not null;uniqueIndex:idx_idempotency_admin_key,priority:2"`
	Route       string    `gorm:"size:255;not null"`
	RequestHash string    `gorm:"size:64;not null"`
	Status      int       `gorm:"not null"`
	Body        string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

func (k *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// Live reports whether the key can still be replayed at now
func (k *IdempotencyKey) Live(now time.Time) bool {
	return now.Before(k.ExpiresAt)
}
