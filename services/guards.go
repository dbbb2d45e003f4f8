package services

import "reward-marketplace-system/models"

// Actor is the authenticated caller as resolved by the gateway middleware.
type Actor struct {
	UserID  string // external user ID
	IsAdmin bool
}

// Authorization guards: pure predicates over (actor, entity). They never
// mutate state and never look at the database — services load the entities,
// ask the guard, and only then touch anything. Keeping them side-effect free
// lets a Forbidden answer stay distinct from "that's not possible right now".

// CanEditReward: non-status fields, creator only, only while the listing is
// still open.
func CanEditReward(a Actor, r *models.Reward) bool {
	return a.UserID == r.CreatorID && r.Status == models.RewardStatusWaiting
}

// CanCancelReward: creator only. State legality (waiting) is checked by the
// lifecycle, not here.
func CanCancelReward(a Actor, r *models.Reward) bool {
	return a.UserID == r.CreatorID
}

// CanToggleVisibility: the waiting ⇄ taken_down toggle, creator only.
func CanToggleVisibility(a Actor, r *models.Reward) bool {
	return a.UserID == r.CreatorID
}

// CanReviewApplication: creator of the reward or an admin.
func CanReviewApplication(a Actor, r *models.Reward) bool {
	return a.IsAdmin || a.UserID == r.CreatorID
}

// CanPayReward: creator only — admins approve applications but never spend
// someone else's balance.
func CanPayReward(a Actor, r *models.Reward) bool {
	return a.UserID == r.CreatorID
}

// CanWithdrawApplication: the applicant only. Accepted applications are
// rejected later with ErrAlreadyAccepted, which is a state error, not a
// capability one.
func CanWithdrawApplication(a Actor, app *models.Application) bool {
	return a.UserID == app.ApplicantID
}

// CanMarkCompleted: only the applicant on the application may report the work
// done.
func CanMarkCompleted(a Actor, app *models.Application) bool {
	return a.UserID == app.ApplicantID
}

// CanManageCategories: write access to reference data is admin only; reads
// are open to any authenticated user.
func CanManageCategories(a Actor) bool {
	return a.IsAdmin
}
