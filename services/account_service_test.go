package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward-marketplace-system/models"
)

func TestEnsureAccount_Idempotent(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)

	first, err := accounts.EnsureAccount("u-a", "alice")
	require.NoError(t, err)
	assert.True(t, first.Balance.IsZero())

	again, err := accounts.EnsureAccount("u-a", "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestAdjustBalance(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	makeAccount(t, db, "u-a", "alice", "50.00")
	actor := Actor{UserID: "u-a"}

	acct, err := accounts.AdjustBalance(actor, mustDecimal(t, "100.00"))
	require.NoError(t, err)
	assert.True(t, acct.Balance.Equal(mustDecimal(t, "150.00")))

	acct, err = accounts.AdjustBalance(actor, mustDecimal(t, "-150.00"))
	require.NoError(t, err)
	assert.True(t, acct.Balance.IsZero())

	// the balance never goes below zero
	_, err = accounts.AdjustBalance(actor, mustDecimal(t, "-0.01"))
	require.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.True(t, reloadAccount(t, db, "u-a").Balance.IsZero())

	_, err = accounts.AdjustBalance(Actor{UserID: "nobody"}, mustDecimal(t, "1.00"))
	assert.ErrorIs(t, err, models.ErrNotFound)
}
