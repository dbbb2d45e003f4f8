// handlers/account_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"reward-marketplace-system/services"
)

func setupSecuredAccountRoutes(secured fiber.Router, accountService *services.AccountService) {
	secured.Get("/account", func(c *fiber.Ctx) error {
		acct, err := accountService.GetAccount(actorFromCtx(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(acct)
	})

	// Deposit (positive amount) or withdraw (negative amount)
	secured.Post("/account/balance", func(c *fiber.Ctx) error {
		var req struct {
			Amount string `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Amount == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount is required"})
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a decimal"})
		}

		acct, err := accountService.AdjustBalance(actorFromCtx(c), amount)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(acct)
	})
}
