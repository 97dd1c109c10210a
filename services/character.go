package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"task-gamification-system/models"

	"gorm.io/gorm"
)

// Character track configuration. XP comes exclusively from completed focus
// sessions; the track is independent of the main level curve except that
// level-ups pay a flat point bonus through the ledger.
const (
	DefaultCharacterClass     = "explorer"
	CharacterXPPerFocusMinute = 2
	CharacterLevelUpBonus     = 25
	CharacterXPPerLevel       = 100 // threshold = characterLevel * 100
)

// CharacterUnlock pairs a class with the character level that unlocks it.
type CharacterUnlock struct {
	Class string
	Level int
}

var CharacterUnlocks = []CharacterUnlock{
	{Class: "explorer", Level: 1},
	{Class: "warrior", Level: 3},
	{Class: "mage", Level: 5},
	{Class: "guardian", Level: 8},
	{Class: "speedster", Level: 12},
	{Class: "healer", Level: 16},
	{Class: "master", Level: 20},
}

// CharacterService drives the secondary XP/level track off focus sessions.
type CharacterService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Notifier Notifier
}

func NewCharacterService(db *gorm.DB, ledger *LedgerService, notifier Notifier) *CharacterService {
	return &CharacterService{DB: db, Ledger: ledger, Notifier: notifier}
}

// ProcessFocusSession values a finished focus session: point award through
// the ledger, then character XP with its own level loop and class unlocks.
// Sessions that were not completed award nothing.
func (s *CharacterService) ProcessFocusSession(userID, sessionID string) error {
	var session models.FocusSession
	err := s.DB.Where("id = ? AND external_user_id = ?", sessionID, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // session gone: nothing to value
	}
	if err != nil {
		return err
	}
	if !session.IsCompleted {
		return nil
	}

	prog, err := s.Ledger.EnsureProgress(userID)
	if err != nil {
		return err
	}

	endedAt := time.Now().UTC()
	if session.EndedAt != nil {
		endedAt = *session.EndedAt
	}
	points := ComputeFocusPoints(FocusPointContext{
		DurationMinutes:    session.DurationMinutes,
		Completed:          session.IsCompleted,
		CompletedYesterday: s.completedSessionYesterday(userID, endedAt),
		CurrentStreak:      prog.CurrentStreak,
		WeeklyActiveDays:   weeklyActiveDays(s.DB, userID),
		EndedAt:            endedAt,
	})
	if points > 0 {
		if _, err := s.Ledger.Award(userID, points, models.TxFocusSession,
			fmt.Sprintf("Focus session (%d min)", session.DurationMinutes), session.TaskID); err != nil {
			return err
		}
	}

	return s.grantCharacterXP(userID, int64(session.DurationMinutes)*CharacterXPPerFocusMinute)
}

func (s *CharacterService) completedSessionYesterday(userID string, ref time.Time) bool {
	dayStart := utcDate(ref).AddDate(0, 0, -1)
	var count int64
	s.DB.Model(&models.FocusSession{}).
		Where("external_user_id = ? AND is_completed = ? AND ended_at >= ? AND ended_at < ?",
			userID, true, dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count)
	return count > 0
}

// grantCharacterXP runs the character level loop and unlocks classes whose
// level requirement is now met.
func (s *CharacterService) grantCharacterXP(userID string, xp int64) error {
	var (
		levelsGained int
		newLevel     int
		unlocked     []string
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		prog.CharacterXP += xp
		for prog.CharacterXP >= int64(prog.CharacterLevel)*CharacterXPPerLevel {
			prog.CharacterXP -= int64(prog.CharacterLevel) * CharacterXPPerLevel
			prog.CharacterLevel++
			levelsGained++
		}
		newLevel = prog.CharacterLevel

		for _, u := range CharacterUnlocks {
			if prog.CharacterLevel >= u.Level && !prog.HasUnlockedCharacter(u.Class) {
				prog.UnlockedCharacters = append(prog.UnlockedCharacters, u.Class)
				unlocked = append(unlocked, u.Class)
			}
		}

		return tx.Save(prog).Error
	})
	if err != nil {
		return err
	}

	// Level-up bonuses go through the ledger so the audit trail sees them.
	for i := 0; i < levelsGained; i++ {
		if _, err := s.Ledger.Award(userID, CharacterLevelUpBonus, models.TxCharacterLevelUp,
			fmt.Sprintf("Character reached level %d", newLevel-levelsGained+i+1), nil); err != nil {
			log.Printf("⚠️ [CHARACTER] level-up bonus for %s failed: %v", userID, err)
		}
	}
	for _, class := range unlocked {
		log.Printf("🧙 [CHARACTER] %s unlocked class %q", userID, class)
	}
	return nil
}

// SwitchCharacterClass changes the active class; locked classes are refused.
func (s *CharacterService) SwitchCharacterClass(userID, class string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}
		if !prog.HasUnlockedCharacter(class) {
			return ErrCharacterLocked
		}
		prog.CurrentCharacterClass = class
		return tx.Save(prog).Error
	})
}
