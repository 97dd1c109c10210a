package services

import (
	"errors"
	"testing"
	"time"

	"task-gamification-system/models"
)

func seedChallenge(t *testing.T, eng *testEngine, c models.Challenge) models.Challenge {
	t.Helper()
	now := time.Now().UTC()
	if c.StartDate.IsZero() {
		c.StartDate = now.AddDate(0, 0, -1)
	}
	if c.EndDate.IsZero() {
		c.EndDate = now.AddDate(0, 0, 7)
	}
	c.IsActive = true
	if err := eng.db.Create(&c).Error; err != nil {
		t.Fatalf("failed to seed challenge: %v", err)
	}
	return c
}

func TestJoinUnknownChallenge(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.challenges.Join("user-1", 999)
	if !errors.Is(err, ErrUnknownChallenge) {
		t.Fatalf("expected ErrUnknownChallenge, got %v", err)
	}
}

func TestJoinClosedChallenge(t *testing.T) {
	eng := newTestEngine(t)

	c := seedChallenge(t, eng, models.Challenge{ID: 90, Name: "Closed", ActivityType: models.ActivityTaskCompletion, TargetCount: 5, PointReward: 50})
	eng.db.Model(&models.Challenge{}).Where("id = ?", c.ID).Update("is_active", false)

	err := eng.challenges.Join("user-1", c.ID)
	if !errors.Is(err, ErrChallengeNotJoinable) {
		t.Fatalf("expected ErrChallengeNotJoinable, got %v", err)
	}
}

func TestJoinTwiceFails(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.challenges.Join("user-1", 1); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	err := eng.challenges.Join("user-1", 1)
	if !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
}

func TestJoinEnforcesPointsRequirement(t *testing.T) {
	eng := newTestEngine(t)

	// Seed challenge 5 requires 500 lifetime points.
	err := eng.challenges.Join("user-1", 5)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestEnrollmentCap(t *testing.T) {
	eng := newTestEngine(t)
	extra := seedChallenge(t, eng, models.Challenge{ID: 91, Name: "Extra", ActivityType: models.ActivityTagUsage, TargetCount: 5, PointReward: 50})

	if err := eng.challenges.Join("user-1", 1); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	if err := eng.challenges.Join("user-1", 3); err != nil {
		t.Fatalf("second join failed: %v", err)
	}

	err := eng.challenges.Join("user-1", extra.ID)
	if !errors.Is(err, ErrEnrollmentLimit) {
		t.Fatalf("expected ErrEnrollmentLimit, got %v", err)
	}

	// Leaving frees a slot.
	if err := eng.challenges.Leave("user-1", 1); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if err := eng.challenges.Join("user-1", extra.ID); err != nil {
		t.Fatalf("join after leave failed: %v", err)
	}
}

func TestLeaveNotEnrolled(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.challenges.Leave("user-1", 1)
	if !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestProgressCompletesAndPaysOut(t *testing.T) {
	eng := newTestEngine(t)

	badgeID := uint(1)
	c := seedChallenge(t, eng, models.Challenge{
		ID: 92, Name: "Quick Sprint", ActivityType: models.ActivityTaskCompletion,
		TargetCount: 2, PointReward: 40, RewardBadgeID: &badgeID,
	})
	if err := eng.challenges.Join("user-1", c.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := eng.challenges.ProcessProgress("user-1", models.ActivityTaskCompletion, ""); err != nil {
		t.Fatalf("first progress failed: %v", err)
	}
	var progress models.ChallengeProgress
	eng.db.Where("external_user_id = ? AND challenge_id = ?", "user-1", c.ID).First(&progress)
	if progress.CurrentProgress != 1 || progress.IsCompleted {
		t.Fatalf("expected 1/2 in progress, got %d completed=%t", progress.CurrentProgress, progress.IsCompleted)
	}

	if err := eng.challenges.ProcessProgress("user-1", models.ActivityTaskCompletion, ""); err != nil {
		t.Fatalf("second progress failed: %v", err)
	}
	eng.db.Where("external_user_id = ? AND challenge_id = ?", "user-1", c.ID).First(&progress)
	if !progress.IsCompleted || progress.CompletedAt == nil {
		t.Fatal("expected challenge completed")
	}

	// Payout: challenge points, the linked badge, and the completion counter.
	if n := eng.txCount(t, "user-1", models.TxChallenge); n != 1 {
		t.Fatalf("expected one challenge payout, got %d", n)
	}
	var badges int64
	eng.db.Model(&models.UserBadge{}).
		Where("external_user_id = ? AND badge_id = ?", "user-1", badgeID).
		Count(&badges)
	if badges != 1 {
		t.Fatalf("expected badge payout, got %d rows", badges)
	}
	if prog := eng.progress(t, "user-1"); prog.ChallengesCompleted != 1 {
		t.Fatalf("expected 1 completed challenge, got %d", prog.ChallengesCompleted)
	}
}

func TestProgressIgnoresOtherActivities(t *testing.T) {
	eng := newTestEngine(t)

	c := seedChallenge(t, eng, models.Challenge{ID: 93, Name: "Focus Only", ActivityType: models.ActivityFocusSession, TargetCount: 3, PointReward: 60})
	if err := eng.challenges.Join("user-1", c.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if err := eng.challenges.ProcessProgress("user-1", models.ActivityTaskCompletion, ""); err != nil {
		t.Fatalf("progress failed: %v", err)
	}

	var progress models.ChallengeProgress
	eng.db.Where("external_user_id = ? AND challenge_id = ?", "user-1", c.ID).First(&progress)
	if progress.CurrentProgress != 0 {
		t.Fatalf("non-matching activity must not advance progress, got %d", progress.CurrentProgress)
	}
}

func TestExpireEndedChallenges(t *testing.T) {
	eng := newTestEngine(t)

	ended := seedChallenge(t, eng, models.Challenge{ID: 94, Name: "Over", ActivityType: models.ActivityTaskCreation, TargetCount: 5, PointReward: 50})
	eng.db.Model(&models.Challenge{}).Where("id = ?", ended.ID).
		Update("end_date", time.Now().UTC().Add(-time.Hour))

	eng.challenges.ExpireEndedChallenges()

	var c models.Challenge
	eng.db.First(&c, ended.ID)
	if c.IsActive {
		t.Fatal("expected ended challenge deactivated")
	}

	open, err := eng.challenges.ListOpenChallenges()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, oc := range open {
		if oc.ID == ended.ID {
			t.Fatal("ended challenge must not be listed as open")
		}
	}
}
