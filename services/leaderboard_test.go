package services

import (
	"errors"
	"testing"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
)

func seedRankedUsers(t *testing.T, eng *testEngine) {
	t.Helper()
	rows := []models.UserProgress{
		{ID: uuid.NewString(), ExternalUserID: "u1", Level: 4, TotalPointsEarned: 300, CurrentStreak: 5, TasksCompleted: 7, NextLevelThreshold: 800, UserTier: "silver"},
		{ID: uuid.NewString(), ExternalUserID: "u2", Level: 3, TotalPointsEarned: 200, CurrentStreak: 9, TasksCompleted: 4, NextLevelThreshold: 519, UserTier: "silver"},
		{ID: uuid.NewString(), ExternalUserID: "u3", Level: 2, TotalPointsEarned: 100, CurrentStreak: 1, TasksCompleted: 9, NextLevelThreshold: 282, UserTier: "silver"},
	}
	for i := range rows {
		if err := eng.db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to seed progress: %v", err)
		}
	}

	// u3 has no directory entry on purpose.
	for _, u := range []models.DirectoryUser{
		{ID: uuid.NewString(), ExternalUserID: "u1", Username: "ada"},
		{ID: uuid.NewString(), ExternalUserID: "u2", Username: "grace"},
	} {
		if err := eng.db.Create(&u).Error; err != nil {
			t.Fatalf("failed to seed directory: %v", err)
		}
	}
}

func seedFamily(t *testing.T, eng *testEngine, familyID string, members ...string) {
	t.Helper()
	if err := eng.db.Create(&models.Family{ID: familyID, Name: familyID, CreatedAt: time.Now().UTC()}).Error; err != nil {
		t.Fatalf("failed to seed family: %v", err)
	}
	for _, m := range members {
		err := eng.db.Create(&models.FamilyMember{
			ID: uuid.NewString(), FamilyID: familyID, ExternalUserID: m,
			Role: "member", JoinedAt: time.Now().UTC(),
		}).Error
		if err != nil {
			t.Fatalf("failed to seed member: %v", err)
		}
	}
}

func TestGlobalLeaderboardRanksDense(t *testing.T) {
	eng := newTestEngine(t)
	seedRankedUsers(t, eng)

	entries, err := eng.leaderboard.Global(BoardPoints, 10)
	if err != nil {
		t.Fatalf("global board failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []struct {
		userID   string
		username string
		score    int64
	}{
		{"u1", "ada", 300},
		{"u2", "grace", 200},
		{"u3", "u3", 100}, // no directory row: raw ID fallback
	} {
		e := entries[i]
		if e.Rank != i+1 || e.UserID != want.userID || e.Username != want.username || e.Score != want.score {
			t.Fatalf("entry %d = %+v, want rank=%d user=%s name=%s score=%d",
				i, e, i+1, want.userID, want.username, want.score)
		}
	}
}

func TestBoardDimensions(t *testing.T) {
	eng := newTestEngine(t)
	seedRankedUsers(t, eng)

	streak, err := eng.leaderboard.Global(BoardStreak, 10)
	if err != nil {
		t.Fatalf("streak board failed: %v", err)
	}
	if streak[0].UserID != "u2" || streak[0].Score != 9 {
		t.Fatalf("expected u2 to lead streak board, got %+v", streak[0])
	}

	tasks, err := eng.leaderboard.Global(BoardTasks, 10)
	if err != nil {
		t.Fatalf("tasks board failed: %v", err)
	}
	if tasks[0].UserID != "u3" || tasks[0].Score != 9 {
		t.Fatalf("expected u3 to lead tasks board, got %+v", tasks[0])
	}
}

func TestUnknownBoard(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.leaderboard.Global("karma", 10); !errors.Is(err, ErrUnknownBoard) {
		t.Fatalf("expected ErrUnknownBoard, got %v", err)
	}
}

func TestFamilyBoardRequiresMembership(t *testing.T) {
	eng := newTestEngine(t)
	seedRankedUsers(t, eng)
	seedFamily(t, eng, "fam-1", "u1", "u2")

	_, err := eng.leaderboard.Family("u3", "fam-1", BoardPoints, 10)
	if !errors.Is(err, ErrNotFamilyMember) {
		t.Fatalf("expected ErrNotFamilyMember, got %v", err)
	}

	entries, err := eng.leaderboard.Family("u1", "fam-1", BoardPoints, 10)
	if err != nil {
		t.Fatalf("family board failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "u1" || entries[1].UserID != "u2" {
		t.Fatalf("unexpected family order: %+v", entries)
	}
}

func TestMyFamiliesDeduplicatesAcrossFamilies(t *testing.T) {
	eng := newTestEngine(t)
	seedRankedUsers(t, eng)
	seedFamily(t, eng, "fam-1", "u1", "u2")
	seedFamily(t, eng, "fam-2", "u1", "u3")

	entries, err := eng.leaderboard.MyFamilies("u1", BoardPoints, 10)
	if err != nil {
		t.Fatalf("my-families board failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 unique users, got %d", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.UserID] {
			t.Fatalf("user %s ranked twice", e.UserID)
		}
		seen[e.UserID] = true
	}
}

func TestMyFamiliesWithoutMemberships(t *testing.T) {
	eng := newTestEngine(t)
	seedRankedUsers(t, eng)

	entries, err := eng.leaderboard.MyFamilies("u1", BoardPoints, 10)
	if err != nil {
		t.Fatalf("my-families board failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty board for user without families, got %d", len(entries))
	}
}
