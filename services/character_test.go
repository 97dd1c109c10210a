package services

import (
	"errors"
	"testing"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
)

func seedFocusSession(t *testing.T, eng *testEngine, userID string, minutes int, completed bool) string {
	t.Helper()
	now := time.Now().UTC()
	session := models.FocusSession{
		ID:              uuid.NewString(),
		ExternalUserID:  userID,
		DurationMinutes: minutes,
		IsCompleted:     completed,
		StartedAt:       now.Add(-time.Duration(minutes) * time.Minute),
	}
	if completed {
		session.EndedAt = &now
	}
	if err := eng.db.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed focus session: %v", err)
	}
	return session.ID
}

func TestFocusSessionGrantsPointsAndXP(t *testing.T) {
	eng := newTestEngine(t)
	sessionID := seedFocusSession(t, eng, "user-1", 30, true)

	if err := eng.character.ProcessFocusSession("user-1", sessionID); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	prog := eng.progress(t, "user-1")
	if prog.CharacterXP != 60 { // 30 min × 2 XP
		t.Fatalf("expected 60 character XP, got %d", prog.CharacterXP)
	}
	if prog.CharacterLevel != 1 {
		t.Fatalf("expected character level 1, got %d", prog.CharacterLevel)
	}
	if n := eng.txCount(t, "user-1", models.TxFocusSession); n != 1 {
		t.Fatalf("expected one focus payout, got %d", n)
	}
}

func TestAbandonedSessionAwardsNothing(t *testing.T) {
	eng := newTestEngine(t)
	sessionID := seedFocusSession(t, eng, "user-1", 30, false)

	if err := eng.character.ProcessFocusSession("user-1", sessionID); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if n := eng.txCount(t, "user-1", models.TxFocusSession); n != 0 {
		t.Fatalf("abandoned session must not pay, got %d rows", n)
	}
	if prog := eng.progress(t, "user-1"); prog.CharacterXP != 0 {
		t.Fatalf("abandoned session must not grant XP, got %d", prog.CharacterXP)
	}
}

func TestMissingSessionIsNoOp(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.character.ProcessFocusSession("user-1", uuid.NewString()); err != nil {
		t.Fatalf("missing session must be a no-op, got %v", err)
	}
}

func TestCharacterLevelLoopAndUnlocks(t *testing.T) {
	eng := newTestEngine(t)
	eng.progress(t, "user-1")

	// 1000 XP: thresholds 100+200+300+400 land exactly on level 5.
	if err := eng.character.grantCharacterXP("user-1", 1000); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	prog := eng.progress(t, "user-1")
	if prog.CharacterLevel != 5 || prog.CharacterXP != 0 {
		t.Fatalf("expected level 5 with 0 XP, got %d/%d", prog.CharacterLevel, prog.CharacterXP)
	}
	for _, class := range []string{"explorer", "warrior", "mage"} {
		if !prog.HasUnlockedCharacter(class) {
			t.Fatalf("expected %q unlocked, have %v", class, prog.UnlockedCharacters)
		}
	}
	if prog.HasUnlockedCharacter("guardian") {
		t.Fatal("guardian needs level 8 and must stay locked")
	}
	if n := eng.txCount(t, "user-1", models.TxCharacterLevelUp); n != 4 {
		t.Fatalf("expected 4 level-up bonuses, got %d", n)
	}
}

func TestSwitchCharacterClass(t *testing.T) {
	eng := newTestEngine(t)
	eng.progress(t, "user-1")

	err := eng.character.SwitchCharacterClass("user-1", "warrior")
	if !errors.Is(err, ErrCharacterLocked) {
		t.Fatalf("expected ErrCharacterLocked, got %v", err)
	}

	if err := eng.character.grantCharacterXP("user-1", 600); err != nil { // level 4
		t.Fatalf("grant failed: %v", err)
	}
	if err := eng.character.SwitchCharacterClass("user-1", "warrior"); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if prog := eng.progress(t, "user-1"); prog.CurrentCharacterClass != "warrior" {
		t.Fatalf("expected active class warrior, got %s", prog.CurrentCharacterClass)
	}
}
