// services/account_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// EnsureAccount creates the ledger record for an external user on first
// contact (idempotent). The sync worker normally gets there first, but a
// request from a user it has not mirrored yet must not fail.
func (s *AccountService) EnsureAccount(externalUserID, username string) (*models.Account, error) {
	var acct models.Account
	err := s.DB.First(&acct, "external_user_id = ?", externalUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acct = models.Account{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			Username:       username,
			Balance:        decimal.Zero,
		}
		if err := s.DB.Create(&acct).Error; err != nil {
			return nil, err
		}
		return &acct, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetAccount returns the actor's own ledger record.
func (s *AccountService) GetAccount(actor Actor) (*models.Account, error) {
	return loadAccount(s.DB, actor.UserID)
}

// AdjustBalance deposits (positive amount) or withdraws (negative amount)
// from the actor's own balance. The balance never goes below zero; a
// too-large withdrawal fails with ErrInsufficientFunds and writes nothing.
func (s *AccountService) AdjustBalance(actor Actor, amount decimal.Decimal) (*models.Account, error) {
	var out *models.Account
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		acct, err := loadAccount(tx, actor.UserID)
		if err != nil {
			return err
		}

		newBalance := acct.Balance.Add(amount)
		if newBalance.Sign() < 0 {
			return models.ErrInsufficientFunds
		}

		res := tx.Model(&models.Account{}).
			Where("id = ? AND version = ?", acct.ID, acct.Version).
			Updates(map[string]interface{}{
				"balance": newBalance,
				"version": acct.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrConflict
		}

		acct.Balance = newBalance
		acct.Version++
		out = acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
