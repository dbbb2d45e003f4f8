package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reward-marketplace-system/models"
	"reward-marketplace-system/services"
)

// actorFromCtx reads the identity the gateway middleware attached.
func actorFromCtx(c *fiber.Ctx) services.Actor {
	uid, _ := c.Locals("user_id").(string)
	isAdmin, _ := c.Locals("is_admin").(bool)
	return services.Actor{UserID: uid, IsAdmin: isAdmin}
}

// errStatus maps domain errors to HTTP statuses. Authorization (403) and
// state-legality (400) stay distinguishable, per the error taxonomy.
func errStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrSelfApplication),
		errors.Is(err, models.ErrAlreadyAccepted):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
