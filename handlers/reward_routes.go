// handlers/reward_routes.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"reward-marketplace-system/services"
	"reward-marketplace-system/utils"
)

func setupPublicRewardRoutes(app *fiber.App, rewardService *services.RewardService) {
	app.Get("/rewards", func(c *fiber.Ctx) error {
		filters := services.RewardFilters{
			Status:          c.Query("status"),
			CategoryName:    c.Query("category_name"),
			CreatorUsername: c.Query("creator_username"),
		}
		rewards, err := rewardService.ListPublicRewards(filters)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rewards)
	})

	app.Get("/rewards/:id", func(c *fiber.Ctx) error {
		reward, err := rewardService.GetReward(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(reward)
	})
}

func setupSecuredRewardRoutes(secured fiber.Router, rewardService *services.RewardService) {
	secured.Get("/my/rewards", func(c *fiber.Ctx) error {
		rewards, err := rewardService.ListRewardsByCreator(actorFromCtx(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rewards)
	})

	secured.Post("/rewards", func(c *fiber.Ctx) error {
		var req struct {
			Title       string     `json:"title" form:"title"`
			Description string     `json:"description" form:"description"`
			CategoryID  *string    `json:"category_id" form:"category_id"`
			Amount      string     `json:"amount" form:"amount"`
			ExpiresAt   *time.Time `json:"expires_at" form:"expires_at"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Title == "" || req.Amount == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and amount are required"})
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || amount.Sign() < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a non-negative decimal"})
		}

		in := services.CreateRewardInput{
			Title:       req.Title,
			Description: req.Description,
			CategoryID:  req.CategoryID,
			Amount:      amount,
			ExpiresAt:   req.ExpiresAt,
		}

		// Optional listing image → R2 (or local uploads fallback)
		if image, ferr := c.FormFile("image"); ferr == nil && image.Size > 0 {
			key := utils.ObjectKey("rewards", req.Title, actorFromCtx(c).UserID, image.Filename)
			url, uerr := utils.SaveUpload(image, key)
			if uerr != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "image upload failed", "cause": uerr.Error()})
			}
			in.ImageURL = url
		}

		reward, err := rewardService.CreateReward(actorFromCtx(c), in)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(reward)
	})

	secured.Put("/rewards/:id", func(c *fiber.Ctx) error {
		var req struct {
			Title       *string    `json:"title"`
			Description *string    `json:"description"`
			CategoryID  *string    `json:"category_id"`
			Amount      *string    `json:"amount"`
			ExpiresAt   *time.Time `json:"expires_at"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		in := services.UpdateRewardInput{
			Title:       req.Title,
			Description: req.Description,
			CategoryID:  req.CategoryID,
			ExpiresAt:   req.ExpiresAt,
		}
		if req.Amount != nil {
			amount, err := decimal.NewFromString(*req.Amount)
			if err != nil || amount.Sign() < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be a non-negative decimal"})
			}
			in.Amount = &amount
		}

		reward, err := rewardService.UpdateReward(actorFromCtx(c), c.Params("id"), in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(reward)
	})

	secured.Post("/rewards/:id/cancel", func(c *fiber.Ctx) error {
		if err := rewardService.CancelReward(actorFromCtx(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "reward cancelled"})
	})

	secured.Post("/rewards/:id/visibility", func(c *fiber.Ctx) error {
		var req struct {
			Action services.VisibilityAction `json:"action"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Action != services.VisibilityTakeDown && req.Action != services.VisibilityRepublish {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "action must be take_down or republish"})
		}
		if err := rewardService.SetVisibility(actorFromCtx(c), c.Params("id"), req.Action); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": string(req.Action)})
	})

	secured.Post("/rewards/:id/pay", func(c *fiber.Ctx) error {
		var req struct {
			Outcome services.PayOutcome `json:"outcome"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Outcome != services.PayOutcomePayed && req.Outcome != services.PayOutcomeCallback {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "outcome must be payed or callback"})
		}
		if err := rewardService.Pay(actorFromCtx(c), c.Params("id"), req.Outcome); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "approved: " + string(req.Outcome)})
	})
}
