package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the local ledger record for a marketplace user. Identity (login,
// password, profile) lives in the profile service; the sync worker mirrors
// usernames in, but Balance and CompletedTasks are owned here — the ledger is
// their sole writer.
type Account struct {
	ID             string          `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string          `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Username       string          `gorm:"index;not null" json:"username"`
	Balance        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"balance"`
	CompletedTasks int64           `gorm:"not null;default:0" json:"completed_tasks"`

	// Optimistic concurrency, same scheme as Reward.Version.
	Version int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
