package services

import (
	"testing"
	"time"

	"task-gamification-system/models"
)

func setLastActivity(t *testing.T, eng *testEngine, userID string, daysAgo, streak, longest int) {
	t.Helper()
	eng.progress(t, userID)
	when := utcDate(time.Now()).AddDate(0, 0, -daysAgo)
	err := eng.db.Model(&models.UserProgress{}).
		Where("external_user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_activity_date": when,
			"current_streak":     streak,
			"longest_streak":     longest,
		}).Error
	if err != nil {
		t.Fatalf("failed to backdate streak: %v", err)
	}
}

func TestFirstTouchStartsStreak(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	prog := eng.progress(t, "user-1")
	if prog.CurrentStreak != 1 || prog.LongestStreak != 1 {
		t.Fatalf("expected streak 1/1, got %d/%d", prog.CurrentStreak, prog.LongestStreak)
	}
	if prog.ActivityDays != 1 {
		t.Fatalf("expected 1 activity day, got %d", prog.ActivityDays)
	}
}

func TestSameDayTouchIsNoOp(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("second touch failed: %v", err)
	}
	prog := eng.progress(t, "user-1")
	if prog.CurrentStreak != 1 || prog.ActivityDays != 1 {
		t.Fatalf("same-day touch must not count twice: streak=%d days=%d",
			prog.CurrentStreak, prog.ActivityDays)
	}
}

func TestConsecutiveDayIncrementsStreak(t *testing.T) {
	eng := newTestEngine(t)
	setLastActivity(t, eng, "user-1", 1, 3, 3)

	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	prog := eng.progress(t, "user-1")
	if prog.CurrentStreak != 4 {
		t.Fatalf("expected streak 4, got %d", prog.CurrentStreak)
	}
	if prog.LongestStreak != 4 {
		t.Fatalf("expected new longest 4, got %d", prog.LongestStreak)
	}
}

func TestGapResetsStreakButKeepsRecord(t *testing.T) {
	eng := newTestEngine(t)
	setLastActivity(t, eng, "user-1", 3, 9, 9)

	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	prog := eng.progress(t, "user-1")
	if prog.CurrentStreak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", prog.CurrentStreak)
	}
	if prog.LongestStreak != 9 {
		t.Fatalf("longest streak must survive a reset, got %d", prog.LongestStreak)
	}
}

func TestStreakMilestoneUnlocks(t *testing.T) {
	eng := newTestEngine(t)
	setLastActivity(t, eng, "user-1", 1, 2, 2)

	// Third consecutive day crosses the 3-day streak achievement.
	if err := eng.streak.Touch("user-1"); err != nil {
		t.Fatalf("touch failed: %v", err)
	}

	var row models.UserAchievement
	err := eng.db.Where("external_user_id = ? AND achievement_id = ? AND is_completed = ?",
		"user-1", 161, true).First(&row).Error
	if err != nil {
		t.Fatalf("expected 3-day streak achievement unlocked: %v", err)
	}
}
