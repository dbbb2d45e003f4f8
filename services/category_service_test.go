package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward-marketplace-system/models"
)

func TestCategoryService(t *testing.T) {
	db := newTestDB(t)
	admin := Actor{UserID: "u-adm", IsAdmin: true}
	user := Actor{UserID: "u-a"}
	makeAccount(t, db, "u-a", "alice", "0.00")

	categories := NewCategoryService(db)

	// writes are admin only
	_, err := categories.CreateCategory(user, "web", "")
	assert.ErrorIs(t, err, models.ErrForbidden)

	cat, err := categories.CreateCategory(admin, "web", "web work")
	require.NoError(t, err)

	_, err = categories.UpdateCategory(user, cat.ID, "frontend", "")
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.ErrorIs(t, categories.DeleteCategory(user, cat.ID), models.ErrForbidden)

	updated, err := categories.UpdateCategory(admin, cat.ID, "frontend", "browser work")
	require.NoError(t, err)
	assert.Equal(t, "frontend", updated.Name)

	// reads are open
	cats, err := categories.ListCategories()
	require.NoError(t, err)
	require.Len(t, cats, 1)

	// deleting clears the reference on rewards, original SET_NULL behavior
	reward, err := NewRewardService(db).CreateReward(user, CreateRewardInput{
		Title:      "Task",
		Amount:     mustDecimal(t, "5.00"),
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)

	require.NoError(t, categories.DeleteCategory(admin, cat.ID))
	assert.Nil(t, reloadReward(t, db, reward.ID).CategoryID)

	assert.ErrorIs(t, categories.DeleteCategory(admin, cat.ID), models.ErrNotFound)
}

func TestCreateReward_UnknownCategory(t *testing.T) {
	db := newTestDB(t)
	user := Actor{UserID: "u-a"}
	makeAccount(t, db, "u-a", "alice", "0.00")

	missing := "00000000-0000-0000-0000-000000000000"
	_, err := NewRewardService(db).CreateReward(user, CreateRewardInput{
		Title:      "Task",
		Amount:     mustDecimal(t, "5.00"),
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
