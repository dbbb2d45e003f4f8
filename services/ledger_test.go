package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reward-marketplace-system/models"
)

func TestTransfer_MovesFunds(t *testing.T) {
	db := newTestDB(t)
	payer := makeAccount(t, db, "u-payer", "alice", "150.00")
	payee := makeAccount(t, db, "u-payee", "bob", "10.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		return Transfer(tx, payer, payee, mustDecimal(t, "100.00"))
	})
	require.NoError(t, err)

	assert.True(t, reloadAccount(t, db, "u-payer").Balance.Equal(mustDecimal(t, "50.00")))
	assert.True(t, reloadAccount(t, db, "u-payee").Balance.Equal(mustDecimal(t, "110.00")))
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	payer := makeAccount(t, db, "u-payer", "alice", "50.00")
	payee := makeAccount(t, db, "u-payee", "bob", "0.00")

	err := db.Transaction(func(tx *gorm.DB) error {
		return Transfer(tx, payer, payee, mustDecimal(t, "100.00"))
	})
	require.ErrorIs(t, err, models.ErrInsufficientFunds)

	// nothing written
	assert.True(t, reloadAccount(t, db, "u-payer").Balance.Equal(mustDecimal(t, "50.00")))
	assert.True(t, reloadAccount(t, db, "u-payee").Balance.Equal(mustDecimal(t, "0.00")))
}

func TestTransfer_RejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	payer := makeAccount(t, db, "u-payer", "alice", "50.00")
	payee := makeAccount(t, db, "u-payee", "bob", "0.00")

	for _, amount := range []string{"0", "-5.00"} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return Transfer(tx, payer, payee, mustDecimal(t, amount))
		})
		assert.Error(t, err, "amount %s", amount)
	}
}

func TestTransfer_StaleVersionConflict(t *testing.T) {
	db := newTestDB(t)
	payer := makeAccount(t, db, "u-payer", "alice", "150.00")
	payee := makeAccount(t, db, "u-payee", "bob", "10.00")

	// Another writer bumps the payer row after we loaded it.
	require.NoError(t, db.Model(&models.Account{}).
		Where("id = ?", payer.ID).
		Update("version", payer.Version+1).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Transfer(tx, payer, payee, mustDecimal(t, "100.00"))
	})
	require.ErrorIs(t, err, models.ErrConflict)

	// the transaction rolled back: payee untouched
	assert.True(t, reloadAccount(t, db, "u-payee").Balance.Equal(mustDecimal(t, "10.00")))
}
