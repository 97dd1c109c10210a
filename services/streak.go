package services

import (
	"log"
	"time"

	"task-gamification-system/models"

	"gorm.io/gorm"
)

// StreakService is the daily-activity continuity state machine. Touch is
// called once per qualifying activity; same-day repeats are no-ops.
type StreakService struct {
	DB           *gorm.DB
	Notifier     Notifier
	Achievements *AchievementService
}

func NewStreakService(db *gorm.DB, notifier Notifier, achievements *AchievementService) *StreakService {
	return &StreakService{DB: db, Notifier: notifier, Achievements: achievements}
}

// Touch advances the streak state machine for today's activity:
// same UTC date → no-op; exactly one day after the last activity →
// increment; anything else → reset to 1.
func (s *StreakService) Touch(userID string) error {
	var (
		touched     bool
		isNewRecord bool
		streak      int
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		today := utcDate(time.Now())
		if prog.LastActivityDate != nil && utcDate(*prog.LastActivityDate).Equal(today) {
			return nil // already counted today
		}

		if prog.LastActivityDate != nil && utcDate(*prog.LastActivityDate).AddDate(0, 0, 1).Equal(today) {
			prog.CurrentStreak++
		} else {
			prog.CurrentStreak = 1
		}
		if prog.CurrentStreak > prog.LongestStreak {
			prog.LongestStreak = prog.CurrentStreak
			isNewRecord = true
		}
		prog.LastActivityDate = &today
		prog.ActivityDays++

		touched = true
		streak = prog.CurrentStreak

		return tx.Save(prog).Error
	})
	if err != nil || !touched {
		return err
	}

	if s.Notifier != nil {
		s.Notifier.StreakUpdated(userID, streak, isNewRecord)
	}

	// Streak milestones ride the same best-effort pipeline as every other
	// achievement sweep.
	if s.Achievements != nil {
		s.Achievements.ProcessUnlocks(userID, models.ActivityStreakUpdated, "", nil)
	}

	log.Printf("🔥 [STREAK] %s touched: streak=%d record=%t", userID, streak, isNewRecord)
	return nil
}
