// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"reward-marketplace-system/models"
)

// StartExpiryScheduler cancels stale waiting listings past their expires_at.
// Each reward goes through the same version-checked transition as a creator
// cancel would; a reward that raced into applied in the meantime is skipped.
func (s *RewardService) StartExpiryScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: expire overdue listings
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var rewards []models.Reward
			now := time.Now()
			err := s.DB.Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?",
				models.RewardStatusWaiting, now).
				Find(&rewards).Error
			if err != nil {
				log.Printf("[Expiry] DB error: %v", err)
				return
			}

			for i := range rewards {
				r := rewards[i]
				if err := transitionReward(s.DB, &r, models.RewardStatusCancelled, nil); err != nil {
					log.Printf("[Expiry] Skipped reward %s: %v", r.ID, err)
				} else {
					log.Printf("✅ Auto-cancelled expired reward: %s", r.Title)
				}
			}
		}),
	)
}
