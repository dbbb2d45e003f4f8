package models

import "errors"

// Domain errors returned by the services layer. Handlers translate these to
// HTTP statuses; callers must be able to tell "not allowed" from "not possible
// right now", so authorization and state-legality failures stay distinct.
var (
	// ErrForbidden: the actor lacks the capability for this operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState: the requested transition is illegal from the current status.
	ErrInvalidState = errors.New("invalid state for this operation")

	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds: payer balance is below the reward amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict: a concurrent mutation won the race; the caller may retry.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrSelfApplication: a creator tried to apply to their own reward.
	ErrSelfApplication = errors.New("cannot apply to your own reward")

	// ErrAlreadyAccepted: an accepted application cannot be withdrawn.
	ErrAlreadyAccepted = errors.New("application already accepted")
)
