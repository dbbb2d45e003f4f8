package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reward-marketplace-system/models"
	"reward-marketplace-system/services"
)

// newTestApp wires routes onto a fresh Fiber app exactly the way main does.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Account{},
		&models.Reward{},
		&models.Application{},
	))

	app := fiber.New()
	SetupRoutes(app,
		services.NewRewardService(db),
		services.NewApplicationService(db),
		services.NewAccountService(db),
		services.NewCategoryService(db),
	)
	return app
}

// The marketplace listings and reference data are readable without a user
// context; only the gateway fronts them. Route registration order matters
// here: a group middleware registered first would swallow every later path.
func TestPublicRoutesSkipUserContext(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/rewards", "/categories"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "GET %s without user headers", path)
	}

	// Uploaded attachments are public too: a missing file is 404, never 401
	resp, err := app.Test(httptest.NewRequest("GET", "/uploads/missing.png", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSecuredRoutesRequireUserContext(t *testing.T) {
	app := newTestApp(t)

	for _, rt := range []struct{ method, path string }{
		{"GET", "/account"},
		{"GET", "/my/rewards"},
		{"GET", "/my/applications"},
		{"POST", "/categories"},
	} {
		resp, err := app.Test(httptest.NewRequest(rt.method, rt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s without X-User-ID", rt.method, rt.path)
	}

	// With gateway identity headers the same route succeeds, and the
	// ledger account is provisioned on first contact.
	req := httptest.NewRequest("GET", "/account", nil)
	req.Header.Set("X-User-ID", "u-alice")
	req.Header.Set("X-User-Name", "alice")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
