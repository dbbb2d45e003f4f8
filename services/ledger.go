package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

// Transfer atomically moves amount from payer to payee inside the caller's
// transaction. Both account rows are written with their version checked, so a
// concurrent balance mutation makes the whole enclosing transaction roll back
// with ErrConflict instead of losing money.
//
// The payee's completed_tasks counter is NOT touched here — that is a side
// effect of the payment transition, applied by Pay, not a ledger feature.
func Transfer(tx *gorm.DB, payer, payee *models.Account, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %s", amount)
	}
	if payer.Balance.LessThan(amount) {
		return models.ErrInsufficientFunds
	}

	debit := tx.Model(&models.Account{}).
		Where("id = ? AND version = ?", payer.ID, payer.Version).
		Updates(map[string]interface{}{
			"balance": payer.Balance.Sub(amount),
			"version": payer.Version + 1,
		})
	if debit.Error != nil {
		return fmt.Errorf("debit %s: %w", payer.ExternalUserID, debit.Error)
	}
	if debit.RowsAffected == 0 {
		return models.ErrConflict
	}

	credit := tx.Model(&models.Account{}).
		Where("id = ? AND version = ?", payee.ID, payee.Version).
		Updates(map[string]interface{}{
			"balance": payee.Balance.Add(amount),
			"version": payee.Version + 1,
		})
	if credit.Error != nil {
		return fmt.Errorf("credit %s: %w", payee.ExternalUserID, credit.Error)
	}
	if credit.RowsAffected == 0 {
		return models.ErrConflict
	}

	return nil
}
