// handlers/admin_routes.go
package handlers

import (
	"fmt"
	"strconv"

	"task-gamification-system/middleware"
	"task-gamification-system/models"
	"task-gamification-system/services"
	"task-gamification-system/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers operator-only endpoints: progress resets, tier
// rechecks, and catalog icon uploads to R2.
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, icons *utils.IconStore, d GamificationDeps) {
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	admin.Post("/users/:id/reset", func(c *fiber.Ctx) error {
		if err := d.Ledger.ResetProgress(c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	admin.Post("/users/:id/tier-recheck", func(c *fiber.Ctx) error {
		changed, err := d.Tier.UpdateTier(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"tier_changed": changed})
	})

	admin.Post("/achievements/:id/icon", func(c *fiber.Ctx) error {
		achievementID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid achievement ID"})
		}
		var achievement models.Achievement
		if err := db.First(&achievement, achievementID).Error; err != nil {
			return fail(c, services.ErrUnknownAchievement)
		}

		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing icon file"})
		}
		iconURL, err := icons.UploadIcon(c.Context(), fileHeader, "achievements", achievement.Name)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fmt.Sprintf("Upload failed: %v", err)})
		}

		if err := db.Model(&achievement).Update("icon_url", iconURL).Error; err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"icon_url": iconURL})
	})

	admin.Post("/badges/:id/icon", func(c *fiber.Ctx) error {
		badgeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid badge ID"})
		}
		var badge models.Badge
		if err := db.First(&badge, badgeID).Error; err != nil {
			return fail(c, services.ErrUnknownBadge)
		}

		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing icon file"})
		}
		iconURL, err := icons.UploadIcon(c.Context(), fileHeader, "badges", badge.Name)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": fmt.Sprintf("Upload failed: %v", err)})
		}

		if err := db.Model(&badge).Update("icon_url", iconURL).Error; err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"icon_url": iconURL})
	})
}
