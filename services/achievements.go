package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AchievementService evaluates unlock predicates across activity categories
// and unlocks achievements idempotently. The whole ProcessUnlocks pipeline is
// best-effort: it must never fail the activity it is reacting to.
type AchievementService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Notifier Notifier

	byCategory map[models.AchievementCategory][]models.Achievement
	byID       map[uint]models.Achievement
}

func NewAchievementService(db *gorm.DB, ledger *LedgerService, notifier Notifier) *AchievementService {
	s := &AchievementService{
		DB:         db,
		Ledger:     ledger,
		Notifier:   notifier,
		byCategory: make(map[models.AchievementCategory][]models.Achievement),
		byID:       make(map[uint]models.Achievement),
	}
	for _, a := range models.AchievementCatalog {
		s.byCategory[a.Category] = append(s.byCategory[a.Category], a)
		s.byID[a.ID] = a
	}
	return s
}

// activityCategories maps each reported activity onto the catalog categories
// it can advance. Milestone and Seasonal always run afterwards.
var activityCategories = map[models.ActivityType][]models.AchievementCategory{
	models.ActivityTaskCompletion:   {models.CategoryProgress},
	models.ActivityTaskCreation:     {models.CategoryCreation},
	models.ActivityCategoryCreation: {models.CategoryOrganizer},
	models.ActivityTagUsage:         {models.CategoryTagging},
	models.ActivityFocusSession:     {models.CategoryFocus},
	models.ActivityFamilyJoin:       {models.CategoryFamily},
	models.ActivityDailyLogin:       {models.CategoryLogin},
	models.ActivityStreakUpdated:    {models.CategoryStreak},
	models.ActivityEventScheduled:   {models.CategoryPlanner},
	models.ActivitySmartScheduling:  {models.CategoryPlanner},
}

// ProcessUnlocks runs the unlock sweep for one reported activity. Errors are
// logged and swallowed: a task completing successfully must never fail
// because an achievement check could not run.
func (s *AchievementService) ProcessUnlocks(userID string, activity models.ActivityType, relatedEntityID string, ctx map[string]string) {
	if err := s.processUnlocks(userID, activity, relatedEntityID, ctx); err != nil {
		log.Printf("⚠️ [ACHIEVEMENTS] sweep failed for %s (%s): %v (ignored)", userID, activity, err)
	}
}

func (s *AchievementService) processUnlocks(userID string, activity models.ActivityType, relatedEntityID string, ctx map[string]string) error {
	if err := s.bumpCounters(userID, activity, relatedEntityID, ctx); err != nil {
		return err
	}

	prog, err := s.Ledger.EnsureProgress(userID)
	if err != nil {
		return err
	}

	for _, cat := range activityCategories[activity] {
		s.checkCategory(userID, prog, cat)
	}

	// Unconditional passes: milestones over usage days and lifetime points,
	// then month-gated seasonal checks.
	s.checkCategory(userID, prog, models.CategoryMilestone)
	s.checkCategory(userID, prog, models.CategoryPoints)
	s.checkSeasonal(userID)

	return nil
}

// bumpCounters advances the aggregate's activity counters under the row lock.
func (s *AchievementService) bumpCounters(userID string, activity models.ActivityType, relatedEntityID string, ctx map[string]string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		switch activity {
		case models.ActivityTaskCompletion:
			prog.TasksCompleted++
		case models.ActivityTaskCreation:
			prog.TasksCreated++
		case models.ActivityCategoryCreation:
			prog.CategoriesCreated++
		case models.ActivityTagUsage:
			prog.TagsUsed++
		case models.ActivityFocusSession:
			prog.FocusSessionsCompleted++
			prog.TotalFocusMinutes += focusMinutes(tx, relatedEntityID, ctx)
		case models.ActivityFamilyJoin:
			prog.FamiliesJoined++
		case models.ActivityEventScheduled:
			prog.EventsScheduled++
		case models.ActivitySmartScheduling:
			prog.SmartSchedulesUsed++
		default:
			return nil // daily_login and streak_updated carry no counter
		}

		return tx.Save(prog).Error
	})
}

func focusMinutes(tx *gorm.DB, sessionID string, ctx map[string]string) int64 {
	if v, ok := ctx["minutes"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	if sessionID != "" {
		var session models.FocusSession
		if err := tx.Where("id = ?", sessionID).First(&session).Error; err == nil {
			return int64(session.DurationMinutes)
		}
	}
	return 0
}

// checkCategory compares the category's counter against every catalog row
// and unlocks whatever is covered. Already-unlocked conflicts are expected
// and ignored; in-progress rows get their percentage refreshed.
func (s *AchievementService) checkCategory(userID string, prog *models.UserProgress, cat models.AchievementCategory) {
	for _, a := range s.byCategory[cat] {
		threshold := a.Threshold()
		if threshold <= 0 {
			continue
		}
		value := s.counterValue(prog, &a)
		if value >= threshold {
			if err := s.UnlockAchievement(userID, a.ID); err != nil && !errors.Is(err, ErrAlreadyUnlocked) {
				log.Printf("⚠️ [ACHIEVEMENTS] unlock %d for %s failed: %v (ignored)", a.ID, userID, err)
			}
		} else if value > 0 {
			s.trackProgress(userID, a.ID, int(value*100/threshold))
		}
	}
}

func (s *AchievementService) counterValue(prog *models.UserProgress, a *models.Achievement) int64 {
	switch a.Category {
	case models.CategoryProgress:
		return prog.TasksCompleted
	case models.CategoryCreation:
		return prog.TasksCreated
	case models.CategoryOrganizer:
		return prog.CategoriesCreated
	case models.CategoryTagging:
		return prog.TagsUsed
	case models.CategoryStreak:
		return int64(prog.CurrentStreak)
	case models.CategoryFocus:
		if strings.HasPrefix(a.Criteria, "minutes:") {
			return prog.TotalFocusMinutes
		}
		return prog.FocusSessionsCompleted
	case models.CategoryLevel:
		return int64(prog.Level)
	case models.CategoryPoints:
		return prog.TotalPointsEarned
	case models.CategoryFamily:
		return prog.FamiliesJoined
	case models.CategoryChallenge:
		return prog.ChallengesCompleted
	case models.CategoryLogin:
		var count int64
		s.DB.Model(&models.PointTransaction{}).
			Where("external_user_id = ? AND transaction_type = ?", prog.ExternalUserID, models.TxDailyLogin).
			Count(&count)
		return count
	case models.CategoryPlanner:
		if strings.HasPrefix(a.Criteria, "smart:") {
			return prog.SmartSchedulesUsed
		}
		return prog.EventsScheduled
	case models.CategoryMilestone:
		return prog.ActivityDays
	default:
		return 0
	}
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// checkSeasonal evaluates month-gated completion counts, but only for the
// current calendar month.
func (s *AchievementService) checkSeasonal(userID string) {
	now := time.Now().UTC()
	for _, a := range s.byCategory[models.CategorySeasonal] {
		name, _, ok := strings.Cut(a.Criteria, ":")
		if !ok {
			continue
		}
		month, known := monthsByName[strings.TrimSpace(strings.ToLower(name))]
		if !known || month != now.Month() {
			continue
		}
		threshold := a.Threshold()
		if threshold <= 0 {
			continue
		}

		monthStart := time.Date(now.Year(), month, 1, 0, 0, 0, 0, time.UTC)
		var count int64
		s.DB.Model(&models.PointTransaction{}).
			Where("external_user_id = ? AND transaction_type = ? AND created_at >= ? AND created_at < ?",
				userID, models.TxTaskCompletion, monthStart, monthStart.AddDate(0, 1, 0)).
			Count(&count)

		if count >= threshold {
			if err := s.UnlockAchievement(userID, a.ID); err != nil && !errors.Is(err, ErrAlreadyUnlocked) {
				log.Printf("⚠️ [ACHIEVEMENTS] seasonal unlock %d for %s failed: %v (ignored)", a.ID, userID, err)
			}
		}
	}
}

// CheckLevelMilestones re-runs the level category. Wired as the ledger's
// post-commit level-up hook, so achievement point awards that push the user
// over another level re-enter here; the idempotency guard bounds the
// recursion.
func (s *AchievementService) CheckLevelMilestones(userID string) {
	prog, err := s.Ledger.EnsureProgress(userID)
	if err != nil {
		log.Printf("⚠️ [ACHIEVEMENTS] level sweep for %s failed: %v (ignored)", userID, err)
		return
	}
	s.checkCategory(userID, prog, models.CategoryLevel)
}

// CheckChallengeMilestones re-runs the challenge category after a completion.
func (s *AchievementService) CheckChallengeMilestones(userID string) {
	prog, err := s.Ledger.EnsureProgress(userID)
	if err != nil {
		log.Printf("⚠️ [ACHIEVEMENTS] challenge sweep for %s failed: %v (ignored)", userID, err)
		return
	}
	s.checkCategory(userID, prog, models.CategoryChallenge)
}

// UnlockAchievement is the single idempotent unlock primitive. A completed
// row already existing is a state conflict, not an overwrite.
func (s *AchievementService) UnlockAchievement(userID string, achievementID uint) error {
	a, ok := s.byID[achievementID]
	if !ok {
		return ErrUnknownAchievement
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.UserAchievement
		err := tx.Where("external_user_id = ? AND achievement_id = ?", userID, achievementID).
			First(&existing).Error
		switch {
		case err == nil && existing.IsCompleted:
			return ErrAlreadyUnlocked
		case err == nil:
			now := time.Now().UTC()
			existing.Progress = 100
			existing.IsCompleted = true
			existing.CompletedAt = &now
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now().UTC()
			return tx.Create(&models.UserAchievement{
				ID:             uuid.NewString(),
				ExternalUserID: userID,
				AchievementID:  achievementID,
				Progress:       100,
				IsCompleted:    true,
				CompletedAt:    &now,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return err
	}

	points := AchievementPointValue(&a)
	if _, err := s.Ledger.Award(userID, points, models.TxAchievement, fmt.Sprintf("Unlocked: %s", a.Name), nil); err != nil {
		// The unlock itself stands; the payout failing is logged, not fatal.
		log.Printf("⚠️ [ACHIEVEMENTS] payout for %d to %s failed: %v", achievementID, userID, err)
	}

	if s.Notifier != nil {
		s.Notifier.AchievementUnlocked(userID, a.Name, a.ID, points)
	}
	log.Printf("🏆 [ACHIEVEMENTS] %s unlocked %q (+%d)", userID, a.Name, points)
	return nil
}

// trackProgress refreshes the percentage on a not-yet-completed row.
func (s *AchievementService) trackProgress(userID string, achievementID uint, pct int) {
	if pct > 99 {
		pct = 99
	}
	var existing models.UserAchievement
	err := s.DB.Where("external_user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.DB.Create(&models.UserAchievement{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			AchievementID:  achievementID,
			Progress:       pct,
		})
	case err == nil && !existing.IsCompleted && existing.Progress != pct:
		s.DB.Model(&existing).Update("progress", pct)
	}
}

// ListUserAchievements returns the user's unlock records with catalog rows
// preloaded.
func (s *AchievementService) ListUserAchievements(userID string) ([]models.UserAchievement, error) {
	var rows []models.UserAchievement
	err := s.DB.Where("external_user_id = ?", userID).
		Preload("Achievement").
		Order("started_at DESC").
		Find(&rows).Error
	return rows, err
}
