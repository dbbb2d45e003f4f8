package models

import "time"

// Application = a user's bid to work on a reward. Immutable after creation
// except for IsAccepted (flipped by review), RejectedAt (stamped on reject)
// and ProofURL (set on completion). Rejected applications are retained as
// history; only the applicant's own withdrawal deletes the row.
type Application struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	RewardID    string `gorm:"index;not null" json:"reward_id"`
	ApplicantID string `gorm:"index;not null" json:"applicant_id"` // external user ID
	IsAccepted  bool   `gorm:"default:false" json:"is_accepted"`
	ProofURL    string `gorm:"type:text" json:"proof_url,omitempty"` // uploaded when marking completed

	// Set when the creator rejects the bid. A rejected row is a history
	// record: it no longer counts as a live bid and cannot be re-reviewed.
	RejectedAt *time.Time `json:"rejected_at,omitempty"`

	ApplicationDate time.Time `json:"application_date" gorm:"autoCreateTime"`
}

// Pending reports whether the bid is still awaiting the creator's decision.
func (a *Application) Pending() bool {
	return !a.IsAccepted && a.RejectedAt == nil
}
