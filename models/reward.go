package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardStatus is the lifecycle status of a reward. Every mutation funnels
// through the transition table below — status is the single source of truth
// for what can happen next.
type RewardStatus string

const (
	RewardStatusWaiting    RewardStatus = "waiting"     // listed, open for applications
	RewardStatusApplied    RewardStatus = "applied"     // has a pending application under review
	RewardStatusInProgress RewardStatus = "in_progress" // accepted applicant is working
	RewardStatusCompleted  RewardStatus = "completed"   // worker marked done, awaiting payment
	RewardStatusPayed      RewardStatus = "payed"       // paid out, terminal
	RewardStatusCancelled  RewardStatus = "cancelled"   // creator cancelled while waiting, terminal
	RewardStatusTakenDown  RewardStatus = "taken_down"  // creator hid the listing
)

// rewardTransitions lists the legal next statuses for each status. Triggers
// and capability checks live in the services layer; this table only answers
// "is that edge on the graph at all".
var rewardTransitions = map[RewardStatus][]RewardStatus{
	RewardStatusWaiting:    {RewardStatusApplied, RewardStatusCancelled, RewardStatusTakenDown},
	RewardStatusTakenDown:  {RewardStatusWaiting},
	RewardStatusApplied:    {RewardStatusInProgress, RewardStatusWaiting},
	RewardStatusInProgress: {RewardStatusCompleted},
	RewardStatusCompleted:  {RewardStatusPayed, RewardStatusInProgress},
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s RewardStatus) CanTransitionTo(next RewardStatus) bool {
	for _, n := range rewardTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leads out of s.
func (s RewardStatus) Terminal() bool {
	return len(rewardTransitions[s]) == 0
}

// HasReceiver reports whether a reward in status s must carry a receiver.
// Invariant: receiver is set iff status ∈ {applied, in_progress, completed, payed}.
func (s RewardStatus) HasReceiver() bool {
	switch s {
	case RewardStatusApplied, RewardStatusInProgress, RewardStatusCompleted, RewardStatusPayed:
		return true
	}
	return false
}

// Reward is a paid task posted by a creator. CreatorID and ReceiverID are
// external user IDs from the profile service (same convention as accounts).
type Reward struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	CategoryID  *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	CreatorID   string          `gorm:"index;not null" json:"creator_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status      RewardStatus    `gorm:"not null;default:'waiting';index" json:"status"`
	ReceiverID  *string         `gorm:"index" json:"receiver_id,omitempty"` // assigned applicant
	ImageURL    string          `gorm:"type:text" json:"image_url,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"` // waiting listings past this are auto-cancelled

	// Optimistic concurrency: bumped on every status write, checked in the
	// UPDATE's WHERE clause. A lost race surfaces as ErrConflict.
	Version int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
