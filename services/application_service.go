// services/application_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func loadApplication(tx *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := tx.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Apply submits a bid on a waiting reward. The reward moves to applied with
// the applicant as receiver; the application itself starts unaccepted.
func (s *ApplicationService) Apply(actor Actor, rewardID string) (*models.Application, error) {
	var app *models.Application
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		reward, err := loadReward(tx, rewardID)
		if err != nil {
			return err
		}
		if reward.CreatorID == actor.UserID {
			return models.ErrSelfApplication
		}
		if reward.Status != models.RewardStatusWaiting {
			return models.ErrInvalidState
		}

		app = &models.Application{
			ID:          uuid.NewString(),
			RewardID:    reward.ID,
			ApplicantID: actor.UserID,
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		applicant := actor.UserID
		return transitionReward(tx, reward, models.RewardStatusApplied, &applicant)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Withdraw deletes the actor's own unaccepted application. The reward reopens
// only when no live bids remain (rejected history rows do not count); if other
// live bids do and the withdrawer was the pending receiver, the most recent
// remaining applicant takes over so the receiver-iff-status invariant keeps
// holding.
func (s *ApplicationService) Withdraw(actor Actor, applicationID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := loadApplication(tx, applicationID)
		if err != nil {
			return err
		}
		if !CanWithdrawApplication(actor, app) {
			return models.ErrForbidden
		}
		if app.IsAccepted {
			return models.ErrAlreadyAccepted
		}

		reward, err := loadReward(tx, app.RewardID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Application{}, "id = ?", app.ID).Error; err != nil {
			return err
		}

		if reward.Status != models.RewardStatusApplied {
			// Retained history row on a waiting/cancelled reward; nothing to reopen.
			return nil
		}

		var remaining []models.Application
		if err := tx.Where("reward_id = ? AND rejected_at IS NULL", reward.ID).
			Order("application_date DESC").
			Find(&remaining).Error; err != nil {
			return err
		}

		if len(remaining) == 0 {
			return transitionReward(tx, reward, models.RewardStatusWaiting, nil)
		}

		if reward.ReceiverID != nil && *reward.ReceiverID == app.ApplicantID {
			next := remaining[0].ApplicantID
			res := tx.Model(&models.Reward{}).
				Where("id = ? AND version = ?", reward.ID, reward.Version).
				Updates(map[string]interface{}{
					"receiver_id": next,
					"version":     reward.Version + 1,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.ErrConflict
			}
		}
		return nil
	})
}

// ReviewDecision is the creator/admin verdict on a pending application.
type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)

// Review accepts or rejects a pending application. Accept flips is_accepted
// and moves the reward to in_progress; reject stamps rejected_at, re-lists the
// reward (waiting, receiver cleared) and retains the application row as
// history. The status==applied gate is what makes a second accept on the same
// reward impossible, and a rejected row is never reviewable again.
func (s *ApplicationService) Review(actor Actor, applicationID string, decision ReviewDecision) error {
	if decision != DecisionAccept && decision != DecisionReject {
		return fmt.Errorf("unknown review decision %q", decision)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := loadApplication(tx, applicationID)
		if err != nil {
			return err
		}
		reward, err := loadReward(tx, app.RewardID)
		if err != nil {
			return err
		}
		if !CanReviewApplication(actor, reward) {
			return models.ErrForbidden
		}
		if reward.Status != models.RewardStatusApplied {
			return models.ErrInvalidState
		}
		if !app.Pending() {
			// History rows (already rejected) are not reviewable even while
			// a later bid keeps the reward in applied.
			return models.ErrInvalidState
		}

		if decision == DecisionReject {
			now := time.Now()
			if err := tx.Model(&models.Application{}).
				Where("id = ?", app.ID).
				Update("rejected_at", &now).Error; err != nil {
				return err
			}
			log.Printf("🔁 [REVIEW] Application %s rejected, reward %s re-listed", app.ID, reward.ID)
			return transitionReward(tx, reward, models.RewardStatusWaiting, nil)
		}

		if err := tx.Model(&models.Application{}).
			Where("id = ?", app.ID).
			Update("is_accepted", true).Error; err != nil {
			return err
		}
		applicant := app.ApplicantID
		return transitionReward(tx, reward, models.RewardStatusInProgress, &applicant)
	})
}

// MarkCompleted is the accepted applicant reporting the work done. An
// optional proof URL (uploaded attachment) is recorded on the application.
func (s *ApplicationService) MarkCompleted(actor Actor, applicationID, proofURL string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := loadApplication(tx, applicationID)
		if err != nil {
			return err
		}
		if !CanMarkCompleted(actor, app) {
			return models.ErrForbidden
		}
		if !app.IsAccepted {
			return models.ErrInvalidState
		}

		reward, err := loadReward(tx, app.RewardID)
		if err != nil {
			return err
		}
		if reward.Status != models.RewardStatusInProgress {
			return models.ErrInvalidState
		}

		if proofURL != "" {
			if err := tx.Model(&models.Application{}).
				Where("id = ?", app.ID).
				Update("proof_url", proofURL).Error; err != nil {
				return err
			}
		}

		return transitionReward(tx, reward, models.RewardStatusCompleted, reward.ReceiverID)
	})
}

// ListForActor returns the actor's own applications; admins see all of them.
func (s *ApplicationService) ListForActor(actor Actor) ([]models.Application, error) {
	var apps []models.Application
	q := s.DB.Order("application_date DESC")
	if !actor.IsAdmin {
		q = q.Where("applicant_id = ?", actor.UserID)
	}
	err := q.Find(&apps).Error
	return apps, err
}
