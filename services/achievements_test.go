package services

import (
	"errors"
	"testing"

	"task-gamification-system/models"
)

func TestUnlockAchievementIsIdempotent(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.achievements.UnlockAchievement("user-1", 101); err != nil {
		t.Fatalf("first unlock failed: %v", err)
	}
	err := eng.achievements.UnlockAchievement("user-1", 101)
	if !errors.Is(err, ErrAlreadyUnlocked) {
		t.Fatalf("expected ErrAlreadyUnlocked, got %v", err)
	}

	var count int64
	eng.db.Model(&models.UserAchievement{}).
		Where("external_user_id = ? AND achievement_id = ?", "user-1", 101).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one unlock row, got %d", count)
	}
}

func TestUnlockPaysDifficultyValue(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.achievements.UnlockAchievement("user-1", 101); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}

	var entry models.PointTransaction
	err := eng.db.Where("external_user_id = ? AND transaction_type = ?",
		"user-1", models.TxAchievement).First(&entry).Error
	if err != nil {
		t.Fatalf("expected achievement payout row: %v", err)
	}
	if entry.Points != 50 { // bronze
		t.Fatalf("expected 50 points for a bronze unlock, got %d", entry.Points)
	}
}

func TestUnlockUnknownAchievement(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.achievements.UnlockAchievement("user-1", 9999)
	if !errors.Is(err, ErrUnknownAchievement) {
		t.Fatalf("expected ErrUnknownAchievement, got %v", err)
	}
}

func TestProcessUnlocksAdvancesCountersAndThresholds(t *testing.T) {
	eng := newTestEngine(t)

	for i := 0; i < 3; i++ {
		eng.achievements.ProcessUnlocks("user-1", models.ActivityTaskCompletion, "", nil)
	}

	prog := eng.progress(t, "user-1")
	if prog.TasksCompleted != 3 {
		t.Fatalf("expected 3 completed tasks, got %d", prog.TasksCompleted)
	}

	// 101 ("1") and 102 ("3") are covered; 103 ("5") is at 60%.
	var completed []models.UserAchievement
	eng.db.Where("external_user_id = ? AND is_completed = ?", "user-1", true).Find(&completed)
	got := map[uint]bool{}
	for _, row := range completed {
		got[row.AchievementID] = true
	}
	if !got[101] || !got[102] {
		t.Fatalf("expected 101 and 102 unlocked, got %v", got)
	}

	var partial models.UserAchievement
	if err := eng.db.Where("external_user_id = ? AND achievement_id = ?", "user-1", 103).
		First(&partial).Error; err != nil {
		t.Fatalf("expected progress row for 103: %v", err)
	}
	if partial.IsCompleted || partial.Progress != 60 {
		t.Fatalf("expected 103 at 60%% incomplete, got completed=%t progress=%d",
			partial.IsCompleted, partial.Progress)
	}
}

func TestFocusMinutesFromContext(t *testing.T) {
	eng := newTestEngine(t)

	eng.achievements.ProcessUnlocks("user-1", models.ActivityFocusSession, "",
		map[string]string{"minutes": "45"})

	prog := eng.progress(t, "user-1")
	if prog.FocusSessionsCompleted != 1 {
		t.Fatalf("expected 1 focus session, got %d", prog.FocusSessionsCompleted)
	}
	if prog.TotalFocusMinutes != 45 {
		t.Fatalf("expected 45 focus minutes, got %d", prog.TotalFocusMinutes)
	}
}

func TestCheckLevelMilestones(t *testing.T) {
	eng := newTestEngine(t)

	eng.progress(t, "user-1")
	eng.db.Model(&models.UserProgress{}).
		Where("external_user_id = ?", "user-1").
		Update("level", 3)

	eng.achievements.CheckLevelMilestones("user-1")

	for _, id := range []uint{201, 202} { // level 2 and level 3
		var row models.UserAchievement
		err := eng.db.Where("external_user_id = ? AND achievement_id = ? AND is_completed = ?",
			"user-1", id, true).First(&row).Error
		if err != nil {
			t.Fatalf("expected level milestone %d unlocked: %v", id, err)
		}
	}
}

func TestUnlockCompletesExistingProgressRow(t *testing.T) {
	eng := newTestEngine(t)

	// A pre-existing incomplete row gets completed in place.
	eng.achievements.trackProgress("user-1", 104, 50)
	if err := eng.achievements.UnlockAchievement("user-1", 104); err != nil {
		t.Fatalf("unlock over progress row failed: %v", err)
	}

	var row models.UserAchievement
	if err := eng.db.Where("external_user_id = ? AND achievement_id = ?", "user-1", 104).
		First(&row).Error; err != nil {
		t.Fatalf("row missing: %v", err)
	}
	if !row.IsCompleted || row.Progress != 100 || row.CompletedAt == nil {
		t.Fatalf("expected completed row at 100%%, got %+v", row)
	}
}
