// services/reward_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

// loadReward fetches a reward inside tx, mapping a missing row to ErrNotFound.
func loadReward(tx *gorm.DB, id string) (*models.Reward, error) {
	var r models.Reward
	if err := tx.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// loadAccount fetches the ledger account for an external user ID.
func loadAccount(tx *gorm.DB, externalUserID string) (*models.Account, error) {
	var a models.Account
	if err := tx.First(&a, "external_user_id = ?", externalUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// transitionReward performs a version-checked status write. The transition
// table is consulted first, so an illegal edge fails before anything is
// written; a lost version race fails with ErrConflict. On success the
// in-memory struct is updated to match the row.
func transitionReward(tx *gorm.DB, r *models.Reward, next models.RewardStatus, receiver *string) error {
	if !r.Status.CanTransitionTo(next) {
		return models.ErrInvalidState
	}
	res := tx.Model(&models.Reward{}).
		Where("id = ? AND version = ?", r.ID, r.Version).
		Updates(map[string]interface{}{
			"status":      next,
			"receiver_id": receiver,
			"version":     r.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("transition reward %s to %s: %w", r.ID, next, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrConflict
	}
	r.Status = next
	r.ReceiverID = receiver
	r.Version++
	return nil
}

type CreateRewardInput struct {
	Title       string
	Description string
	CategoryID  *string
	Amount      decimal.Decimal
	ImageURL    string
	ExpiresAt   *time.Time
}

// CreateReward lists a new reward for the creator, status=waiting.
func (s *RewardService) CreateReward(actor Actor, in CreateRewardInput) (*models.Reward, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if in.Amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}

	reward := &models.Reward{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		CreatorID:   actor.UserID,
		Amount:      in.Amount,
		Status:      models.RewardStatusWaiting,
		ImageURL:    in.ImageURL,
		ExpiresAt:   in.ExpiresAt,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			var cat models.Category
			if err := tx.First(&cat, "id = ?", *in.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
		}
		return tx.Create(reward).Error
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

type UpdateRewardInput struct {
	Title       *string
	Description *string
	CategoryID  *string
	Amount      *decimal.Decimal
	ExpiresAt   *time.Time
}

// UpdateReward edits non-status fields. Creator only, and only while the
// listing is still waiting — once someone applied the terms are frozen.
func (s *RewardService) UpdateReward(actor Actor, rewardID string, in UpdateRewardInput) (*models.Reward, error) {
	var updated *models.Reward
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		reward, err := loadReward(tx, rewardID)
		if err != nil {
			return err
		}
		if !CanEditReward(actor, reward) {
			return models.ErrForbidden
		}

		fields := map[string]interface{}{"version": reward.Version + 1}
		if in.Title != nil {
			if *in.Title == "" {
				return fmt.Errorf("title must not be empty")
			}
			fields["title"] = *in.Title
		}
		if in.Description != nil {
			fields["description"] = *in.Description
		}
		if in.Amount != nil {
			if in.Amount.Sign() < 0 {
				return fmt.Errorf("amount must not be negative")
			}
			fields["amount"] = *in.Amount
		}
		if in.CategoryID != nil {
			var cat models.Category
			if err := tx.First(&cat, "id = ?", *in.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			fields["category_id"] = *in.CategoryID
		}
		if in.ExpiresAt != nil {
			fields["expires_at"] = *in.ExpiresAt
		}

		res := tx.Model(&models.Reward{}).
			Where("id = ? AND version = ?", reward.ID, reward.Version).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrConflict
		}
		updated, err = loadReward(tx, rewardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelReward moves a waiting reward to the terminal cancelled status.
/// The accepted-application check inside the transaction is a re-verification:
// waiting already implies none, but a racing accept must not slip through.
func (s *RewardService) CancelReward(actor Actor, rewardID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		reward, err := loadReward(tx, rewardID)
		if err != nil {
			return err
		}
		if !CanCancelReward(actor, reward) {
			return models.ErrForbidden
		}
		if reward.Status != models.RewardStatusWaiting {
			return models.ErrInvalidState
		}

		var accepted int64
		if err := tx.Model(&models.Application{}).
			Where("reward_id = ? AND is_accepted = ?", reward.ID, true).
			Count(&accepted).Error; err != nil {
			return err
		}
		if accepted > 0 {
			return models.ErrConflict
		}

		return transitionReward(tx, reward, models.RewardStatusCancelled, nil)
	})
}

// VisibilityAction is the waiting ⇄ taken_down toggle, a small state machine
// orthogonal to the main lifecycle.
type VisibilityAction string

const (
	VisibilityTakeDown  VisibilityAction = "take_down"
	VisibilityRepublish VisibilityAction = "republish"
)

// SetVisibility hides or re-lists a reward. Creator only, bidirectional.
func (s *RewardService) SetVisibility(actor Actor, rewardID string, action VisibilityAction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		reward, err := loadReward(tx, rewardID)
		if err != nil {
			return err
		}
		if !CanToggleVisibility(actor, reward) {
			return models.ErrForbidden
		}

		switch action {
		case VisibilityTakeDown:
			if reward.Status != models.RewardStatusWaiting {
				return models.ErrInvalidState
			}
			return transitionReward(tx, reward, models.RewardStatusTakenDown, nil)
		case VisibilityRepublish:
			if reward.Status != models.RewardStatusTakenDown {
				return models.ErrInvalidState
			}
			return transitionReward(tx, reward, models.RewardStatusWaiting, nil)
		default:
			return fmt.Errorf("unknown visibility action %q", action)
		}
	})
}

// PayOutcome is the creator's verdict on a completed reward.
type PayOutcome string

const (
	PayOutcomePayed    PayOutcome = "payed"    // approve: funds move, terminal
	PayOutcomeCallback PayOutcome = "callback" // dispute: back to in_progress for rework, no funds move
)

// Pay settles a completed reward. On "payed" the balance transfer, the
// completed_tasks bump and the status write commit together or not at all —
// a failed transfer (insufficient funds, version race) leaves the reward
// completed and both balances untouched, retryable by the creator.
func (s *RewardService) Pay(actor Actor, rewardID string, outcome PayOutcome) error {
	if outcome != PayOutcomePayed && outcome != PayOutcomeCallback {
		return fmt.Errorf("unknown pay outcome %q", outcome)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		reward, err := loadReward(tx, rewardID)
		if err != nil {
			return err
		}
		if !CanPayReward(actor, reward) {
			return models.ErrForbidden
		}
		if reward.Status != models.RewardStatusCompleted {
			return models.ErrInvalidState
		}

		if outcome == PayOutcomeCallback {
			// Dispute: the worker keeps the assignment and may re-complete.
			return transitionReward(tx, reward, models.RewardStatusInProgress, reward.ReceiverID)
		}

		if reward.ReceiverID == nil {
			return fmt.Errorf("completed reward %s has no receiver", reward.ID)
		}
		payer, err := loadAccount(tx, reward.CreatorID)
		if err != nil {
			return err
		}
		payee, err := loadAccount(tx, *reward.ReceiverID)
		if err != nil {
			return err
		}

		if err := Transfer(tx, payer, payee, reward.Amount); err != nil {
			return err
		}

		// Payment-transition side effect, not a ledger feature.
		if err := tx.Model(&models.Account{}).
			Where("id = ?", payee.ID).
			UpdateColumn("completed_tasks", gorm.Expr("completed_tasks + 1")).Error; err != nil {
			return err
		}

		if err := transitionReward(tx, reward, models.RewardStatusPayed, reward.ReceiverID); err != nil {
			return err
		}

		log.Printf("💸 [PAY] Reward %s payed: %s → %s (%s)", reward.ID, payer.ExternalUserID, payee.ExternalUserID, reward.Amount)
		return nil
	})
}

// GetReward returns a single reward by ID.
func (s *RewardService) GetReward(rewardID string) (*models.Reward, error) {
	return loadReward(s.DB, rewardID)
}

// ListRewardsByCreator returns the actor's own rewards, newest first.
func (s *RewardService) ListRewardsByCreator(actor Actor) ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.DB.Where("creator_id = ?", actor.UserID).
		Order("created_at DESC").
		Find(&rewards).Error
	return rewards, err
}

// RewardFilters narrow the public listing. Empty fields match everything.
type RewardFilters struct {
	Status          string
	CategoryName    string
	CreatorUsername string
}

// RewardSummary is the public listing row: an explicit output struct with the
// denormalized category and creator names, no reflective field selection.
type RewardSummary struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	Status          models.RewardStatus `json:"status"`
	CategoryName    *string             `json:"category_name"`
	CreatorUsername *string             `json:"creator_username"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ListPublicRewards is the unauthenticated listing. Taken-down rewards are
// never shown, whatever the filters say.
func (s *RewardService) ListPublicRewards(f RewardFilters) ([]RewardSummary, error) {
	q := s.DB.Model(&models.Reward{}).
		Select("rewards.id, rewards.title, rewards.description, rewards.amount, rewards.status, rewards.created_at, rewards.updated_at, categories.name AS category_name, accounts.username AS creator_username").
		Joins("LEFT JOIN categories ON categories.id = rewards.category_id").
		Joins("LEFT JOIN accounts ON accounts.external_user_id = rewards.creator_id").
		Where("rewards.status <> ?", models.RewardStatusTakenDown)

	if f.Status != "" {
		q = q.Where("rewards.status = ?", f.Status)
	}
	if f.CategoryName != "" {
		q = q.Where("categories.name = ?", f.CategoryName)
	}
	if f.CreatorUsername != "" {
		q = q.Where("accounts.username = ?", f.CreatorUsername)
	}

	var out []RewardSummary
	if err := q.Order("rewards.created_at DESC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list public rewards: %w", err)
	}
	return out, nil
}
