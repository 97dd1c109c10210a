// handlers/gamification_routes.go
package handlers

import (
	"errors"
	"strconv"

	"task-gamification-system/middleware"
	"task-gamification-system/models"
	"task-gamification-system/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the engine's error taxonomy onto HTTP: validation →
// 400, unknown ids → 404, state conflicts → 409, everything else → 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNegativePoints):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnknownAchievement),
		errors.Is(err, services.ErrUnknownBadge),
		errors.Is(err, services.ErrUnknownReward),
		errors.Is(err, services.ErrUnknownChallenge),
		errors.Is(err, services.ErrUnknownBoard):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotFamilyMember):
		return fiber.StatusForbidden
	case services.IsConflict(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}

// GamificationDeps bundles the engine services the routes sit on.
type GamificationDeps struct {
	Ledger       *services.LedgerService
	Tier         *services.TierService
	Streak       *services.StreakService
	Achievements *services.AchievementService
	Challenges   *services.ChallengeService
	Badges       *services.BadgeService
	Rewards      *services.RewardService
	Leaderboard  *services.LeaderboardService
	Character    *services.CharacterService
	Hub          *services.EventHub
	AuthClient   *services.AuthServiceClient
}

func SetupGamificationRoutes(app *fiber.App, d GamificationDeps) {
	// --- Activity trigger interface (service-to-service, gateway token only) ---
	events := app.Group("/events")

	events.Post("/award", func(c *fiber.Ctx) error {
		var req struct {
			UserID      string                 `json:"user_id"`
			Points      int64                  `json:"points"`
			Type        models.TransactionType `json:"type"`
			Description string                 `json:"description"`
			TaskID      *string                `json:"task_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.Type == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		res, err := d.Ledger.Award(req.UserID, req.Points, req.Type, req.Description, req.TaskID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"transaction_id": res.TransactionID,
			"points":         res.Points,
			"old_level":      res.OldLevel,
			"new_level":      res.NewLevel,
			"tier_changed":   res.TierChanged,
		})
	})

	events.Post("/streak-touch", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := d.Streak.Touch(req.UserID); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	events.Post("/unlocks", func(c *fiber.Ctx) error {
		var req struct {
			UserID          string              `json:"user_id"`
			ActivityType    models.ActivityType `json:"activity_type"`
			RelatedEntityID string              `json:"related_entity_id"`
			Context         map[string]string   `json:"context"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.ActivityType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		// Best-effort by contract: always 204, failures only hit the logs.
		d.Achievements.ProcessUnlocks(req.UserID, req.ActivityType, req.RelatedEntityID, req.Context)
		return c.SendStatus(fiber.StatusNoContent)
	})

	events.Post("/challenge-progress", func(c *fiber.Ctx) error {
		var req struct {
			UserID          string              `json:"user_id"`
			ActivityType    models.ActivityType `json:"activity_type"`
			RelatedEntityID string              `json:"related_entity_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.ActivityType == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := d.Challenges.ProcessProgress(req.UserID, req.ActivityType, req.RelatedEntityID); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	events.Post("/focus-completed", func(c *fiber.Ctx) error {
		var req struct {
			UserID    string `json:"user_id"`
			SessionID string `json:"session_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.UserID == "" || req.SessionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := d.Character.ProcessFocusSession(req.UserID, req.SessionID); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// --- SSE stream (query-token auth: EventSource cannot send headers) ---
	app.Get("/user/events/stream", middleware.SSEAuthMiddleware(d.AuthClient), d.Hub.StreamUserEventsSSE)

	// 🔐 Secured routes — require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		prog, err := d.Ledger.EnsureProgress(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"id":                   prog.ID,
			"level":                prog.Level,
			"current_points":       prog.CurrentPoints,
			"total_points_earned":  prog.TotalPointsEarned,
			"next_level_threshold": prog.NextLevelThreshold,
			"current_streak":       prog.CurrentStreak,
			"longest_streak":       prog.LongestStreak,
			"user_tier":            prog.UserTier,
			"tier_name":            services.TierDisplayName(prog.UserTier),
			"tasks_completed":      prog.TasksCompleted,
			"character_class":      prog.CurrentCharacterClass,
			"character_level":      prog.CharacterLevel,
			"character_xp":         prog.CharacterXP,
			"unlocked_characters":  prog.UnlockedCharacters,
			"last_level_up_at":     prog.LastLevelUpAt,
			"last_tier_up_at":      prog.LastTierUpAt,
		})
	})

	secured.Get("/user/transactions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		page, _ := strconv.Atoi(c.Query("page", "1"))
		size, _ := strconv.Atoi(c.Query("size", "20"))
		entries, total, err := d.Ledger.GetTransactions(userID, page, size)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"transactions": entries,
			"total_items":  total,
			"page":         page,
			"size":         size,
		})
	})

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rows, err := d.Achievements.ListUserAchievements(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rows)
	})

	secured.Get("/user/badges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rows, err := d.Badges.ListUserBadges(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rows)
	})

	secured.Put("/user/badges/:id/display", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		badgeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid badge ID"})
		}
		var req struct {
			Displayed bool `json:"displayed"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := d.Badges.SetBadgeDisplayed(userID, uint(badgeID), req.Displayed); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	secured.Get("/challenges", func(c *fiber.Ctx) error {
		challenges, err := d.Challenges.ListOpenChallenges()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(challenges)
	})

	secured.Get("/user/challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		views, err := d.Challenges.ListUserChallenges(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(views)
	})

	secured.Post("/challenges/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
		}
		if err := d.Challenges.Join(userID, uint(challengeID)); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	secured.Delete("/challenges/:id/leave", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		challengeID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid challenge ID"})
		}
		if err := d.Challenges.Leave(userID, uint(challengeID)); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	secured.Get("/rewards", func(c *fiber.Ctx) error {
		rewards, err := d.Rewards.ListRewards()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rewards)
	})

	secured.Get("/user/rewards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rows, err := d.Rewards.ListUserRewards(userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rows)
	})

	secured.Post("/rewards/:id/redeem", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rewardID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reward ID"})
		}
		redemption, err := d.Rewards.RedeemReward(userID, uint(rewardID))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(redemption)
	})

	secured.Post("/user/rewards/:id/use", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		if err := d.Rewards.UseReward(userID, c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	secured.Post("/user/character/switch", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Class string `json:"class"`
		}
		if err := c.BodyParser(&req); err != nil || req.Class == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if err := d.Character.SwitchCharacterClass(userID, req.Class); err != nil {
			return fail(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	secured.Get("/leaderboard/:board", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := d.Leaderboard.Global(c.Params("board"), limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"board": c.Params("board"), "entries": entries})
	})

	secured.Get("/family/:id/leaderboard/:board", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := d.Leaderboard.Family(userID, c.Params("id"), c.Params("board"), limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"board": c.Params("board"), "family_id": c.Params("id"), "entries": entries})
	})

	secured.Get("/user/family-leaderboard/:board", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := d.Leaderboard.MyFamilies(userID, c.Params("board"), limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"board": c.Params("board"), "entries": entries})
	})
}
