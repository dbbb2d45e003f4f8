package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reward-marketplace-system/models"
)

// --- helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Account{},
		&models.Reward{},
		&models.Application{},
	))
	return db
}

func makeAccount(t *testing.T, db *gorm.DB, userID, username, balance string) *models.Account {
	t.Helper()
	acct := &models.Account{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		Username:       username,
		Balance:        mustDecimal(t, balance),
	}
	require.NoError(t, db.Create(acct).Error)
	return acct
}

func makeReward(t *testing.T, db *gorm.DB, creator Actor, amount string) *models.Reward {
	t.Helper()
	reward, err := NewRewardService(db).CreateReward(creator, CreateRewardInput{
		Title:       "Fix the login page",
		Description: "It falls over on mobile",
		Amount:      mustDecimal(t, amount),
	})
	require.NoError(t, err)
	return reward
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func reloadReward(t *testing.T, db *gorm.DB, id string) *models.Reward {
	t.Helper()
	var r models.Reward
	require.NoError(t, db.First(&r, "id = ?", id).Error)
	return &r
}

func reloadAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	var a models.Account
	require.NoError(t, db.First(&a, "external_user_id = ?", userID).Error)
	return &a
}
