// handlers/application_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"reward-marketplace-system/services"
	"reward-marketplace-system/utils"
)

func setupSecuredApplicationRoutes(secured fiber.Router, applicationService *services.ApplicationService) {
	secured.Get("/my/applications", func(c *fiber.Ctx) error {
		apps, err := applicationService.ListForActor(actorFromCtx(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(apps)
	})

	secured.Post("/applications", func(c *fiber.Ctx) error {
		var req struct {
			RewardID string `json:"reward_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.RewardID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward_id is required"})
		}

		application, err := applicationService.Apply(actorFromCtx(c), req.RewardID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(application)
	})

	secured.Delete("/applications/:id", func(c *fiber.Ctx) error {
		if err := applicationService.Withdraw(actorFromCtx(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "application withdrawn"})
	})

	secured.Post("/applications/:id/review", func(c *fiber.Ctx) error {
		var req struct {
			Decision services.ReviewDecision `json:"decision"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Decision != services.DecisionAccept && req.Decision != services.DecisionReject {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "decision must be accept or reject"})
		}
		if err := applicationService.Review(actorFromCtx(c), c.Params("id"), req.Decision); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "application " + string(req.Decision) + "ed"})
	})

	secured.Post("/applications/:id/complete", func(c *fiber.Ctx) error {
		// Optional proof of completion attachment
		proofURL := ""
		if proof, ferr := c.FormFile("proof"); ferr == nil && proof.Size > 0 {
			key := utils.ObjectKey("proofs", "proof", c.Params("id"), proof.Filename)
			url, uerr := utils.SaveUpload(proof, key)
			if uerr != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "proof upload failed", "cause": uerr.Error()})
			}
			proofURL = url
		}

		if err := applicationService.MarkCompleted(actorFromCtx(c), c.Params("id"), proofURL); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "reward marked completed"})
	})
}
