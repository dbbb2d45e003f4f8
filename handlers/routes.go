// handlers/routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"reward-marketplace-system/middleware"
	"reward-marketplace-system/services"
)

// SetupRoutes wires every route. Fiber applies group middleware to all routes
// registered after it, so the public surface (listings, reference data,
// uploaded attachments) must be mounted before the secured group — otherwise
// its user-context check swallows unauthenticated reads.
func SetupRoutes(
	app *fiber.App,
	rewardService *services.RewardService,
	applicationService *services.ApplicationService,
	accountService *services.AccountService,
	categoryService *services.CategoryService,
) {
	// 🔓 Public routes — no user context, but still behind Gateway auth
	setupPublicRewardRoutes(app, rewardService)
	setupPublicCategoryRoutes(app, categoryService)
	app.Static("/uploads", "./uploads")

	// 🔐 Secured routes — user context + ledger account, attached once here
	secured := app.Group("/", middleware.UserContextMiddleware(), ensureAccount(accountService))
	setupSecuredRewardRoutes(secured, rewardService)
	setupSecuredApplicationRoutes(secured, applicationService)
	setupSecuredAccountRoutes(secured, accountService)
	setupSecuredCategoryRoutes(secured, categoryService)
}

// ensureAccount guarantees a ledger record exists for the caller before any
// secured handler runs. The sync worker normally creates it first.
func ensureAccount(accountService *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		username, _ := c.Locals("username").(string)
		if _, err := accountService.EnsureAccount(uid, username); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to ensure account", "cause": err.Error()})
		}
		return c.Next()
	}
}
