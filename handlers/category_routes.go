// handlers/category_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"reward-marketplace-system/services"
)

func setupPublicCategoryRoutes(app *fiber.App, categoryService *services.CategoryService) {
	app.Get("/categories", func(c *fiber.Ctx) error {
		cats, err := categoryService.ListCategories()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(cats)
	})
}

// Writes are admin-only (guard enforced in the service).
func setupSecuredCategoryRoutes(secured fiber.Router, categoryService *services.CategoryService) {
	secured.Post("/categories", func(c *fiber.Ctx) error {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		cat, err := categoryService.CreateCategory(actorFromCtx(c), req.Name, req.Description)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	})

	secured.Put("/categories/:id", func(c *fiber.Ctx) error {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		cat, err := categoryService.UpdateCategory(actorFromCtx(c), c.Params("id"), req.Name, req.Description)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(cat)
	})

	secured.Delete("/categories/:id", func(c *fiber.Ctx) error {
		if err := categoryService.DeleteCategory(actorFromCtx(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"detail": "category deleted"})
	})
}
