package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Base threshold for the level curve: next = floor(100 * level^1.5)
const BaseLevelThreshold = 100

// TierAdvancementBonus is multiplied by the tier index for the one-time
// advancement payout.
const TierAdvancementBonus = 250

func nextLevelThreshold(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(BaseLevelThreshold * math.Pow(float64(level), 1.5)))
}

// applyLevelLoop rolls CurrentPoints over into levels until the invariant
// CurrentPoints < NextLevelThreshold holds again. Returns levels gained.
func applyLevelLoop(prog *models.UserProgress) int {
	gained := 0
	for prog.CurrentPoints >= prog.NextLevelThreshold {
		prog.CurrentPoints -= prog.NextLevelThreshold
		prog.Level++
		prog.NextLevelThreshold = nextLevelThreshold(prog.Level)
		gained++
	}
	if gained > 0 {
		now := time.Now().UTC()
		prog.LastLevelUpAt = &now
	}
	return gained
}

// forUpdate adds a row lock where the dialect supports one. SQLite (tests)
// serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LedgerService appends immutable point transactions and keeps the
// UserProgress aggregate consistent with them. The progress row lock taken
// inside Award's transaction is the per-user serialization point for
// award + leveling + tier advancement.
type LedgerService struct {
	DB       *gorm.DB
	Tier     *TierService
	Notifier Notifier

	// OnLevelUp runs after commit for each award that changed the level;
	// wired to the achievement engine's level-milestone sweep. Best-effort.
	OnLevelUp func(userID string, oldLevel, newLevel int)
}

func NewLedgerService(db *gorm.DB, tier *TierService, notifier Notifier) *LedgerService {
	return &LedgerService{DB: db, Tier: tier, Notifier: notifier}
}

// EnsureProgress ensures a UserProgress row exists (idempotent, lazy create
// on first access).
func (s *LedgerService) EnsureProgress(userID string) (*models.UserProgress, error) {
	return ensureProgress(s.DB, userID)
}

func ensureProgress(db *gorm.DB, userID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := db.Where("external_user_id = ?", userID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := models.UserProgress{
			ID:                 uuid.NewString(),
			ExternalUserID:     userID,
			Level:              1,
			NextLevelThreshold: nextLevelThreshold(1),
			UserTier:           DefaultTierBands[0].Name,
			UnlockedCharacters: []string{DefaultCharacterClass},
		}
		// Two first awards can race to this insert. The loser's create is a
		// no-op and both proceed against the surviving row.
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_user_id"}},
			DoNothing: true,
		}).Create(&fresh).Error; err != nil {
			return nil, err
		}
		err = db.Where("external_user_id = ?", userID).First(&prog).Error
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// lockProgress fetches the aggregate under a row lock, creating it first if
// this is the user's first activity.
func lockProgress(tx *gorm.DB, userID string) (*models.UserProgress, error) {
	if _, err := ensureProgress(tx, userID); err != nil {
		return nil, err
	}
	var prog models.UserProgress
	if err := forUpdate(tx).Where("external_user_id = ?", userID).First(&prog).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

// weeklyActiveDays counts distinct UTC dates with ledger activity in the
// current week (Monday-based), feeding the consistency multiplier.
func weeklyActiveDays(tx *gorm.DB, userID string) int {
	now := time.Now().UTC()
	offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -offset)

	var count int64
	tx.Model(&models.PointTransaction{}).
		Where("external_user_id = ? AND created_at >= ? AND points > 0", userID, weekStart).
		Select("COUNT(DISTINCT DATE(created_at))").
		Scan(&count)
	return int(count)
}

// AwardResult reports what an award did to the aggregate.
type AwardResult struct {
	TransactionID string
	Points        int64
	OldLevel      int
	NewLevel      int
	TierChanged   bool
	NewTier       string
	TierBonus     int64
}

// Award appends a ledger entry and updates the aggregate. For task
// completions with a task reference and for daily logins the raw amount is
// advisory only and replaced by the computed value. Returns the created
// transaction's ID.
func (s *LedgerService) Award(userID string, rawPoints int64, txType models.TransactionType, description string, taskID *string) (*AwardResult, error) {
	if rawPoints < 0 {
		return nil, ErrNegativePoints
	}

	res := &AwardResult{}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		// Weak reference: resolved once for every award type. A deleted task
		// nulls the reference but never blocks the award.
		var task *models.Task
		if taskID != nil {
			var row models.Task
			err := tx.Where("id = ?", *taskID).First(&row).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				taskID = nil
			case err != nil:
				return err
			default:
				task = &row
			}
		}

		amount := rawPoints
		switch txType {
		case models.TxTaskCompletion:
			if task != nil {
				amount = ComputeTaskPoints(TaskPointContext{
					Priority:         task.Priority,
					DueDate:          task.DueDate,
					CompletedAt:      completionTime(task),
					HasFamilyLink:    task.FamilyID != nil || task.AssignedToMemberID != nil,
					CurrentStreak:    prog.CurrentStreak,
					WeeklyActiveDays: weeklyActiveDays(tx, userID),
				})
			}
		case models.TxDailyLogin:
			today := utcDate(time.Now())
			if prog.LastLoginClaim != nil && utcDate(*prog.LastLoginClaim).Equal(today) {
				return ErrAlreadyClaimedToday
			}
			prog.LastLoginClaim = &today
			amount = ComputeDailyLoginPoints(prog.CurrentStreak)
		}

		entry := models.PointTransaction{
			ID:              uuid.NewString(),
			ExternalUserID:  userID,
			Points:          amount,
			TransactionType: txType,
			Description:     description,
			TaskID:          taskID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		res.TransactionID = entry.ID
		res.Points = amount
		res.OldLevel = prog.Level

		prog.CurrentPoints += amount
		prog.TotalPointsEarned += amount
		applyLevelLoop(prog)

		// Tier advancement re-enters the ledger once, on the same tx; it
		// cannot fire twice in one call because it only reacts to a band
		// change.
		if band, idx, changed := s.Tier.Evaluate(prog); changed {
			bonus := int64(idx) * TierAdvancementBonus
			bonusEntry := models.PointTransaction{
				ID:              uuid.NewString(),
				ExternalUserID:  userID,
				Points:          bonus,
				TransactionType: models.TxTierAdvancement,
				Description:     fmt.Sprintf("Advanced to %s tier", band.Name),
			}
			if err := tx.Create(&bonusEntry).Error; err != nil {
				return err
			}
			now := time.Now().UTC()
			prog.UserTier = band.Name
			prog.LastTierUpAt = &now
			prog.CurrentPoints += bonus
			prog.TotalPointsEarned += bonus
			applyLevelLoop(prog)

			res.TierChanged = true
			res.NewTier = band.Name
			res.TierBonus = bonus
		}

		res.NewLevel = prog.Level

		return tx.Save(prog).Error
	})
	if err != nil {
		return nil, err
	}

	// Side effects only after the mutation is durably committed.
	s.notifyAward(userID, res, description, taskID)

	return res, nil
}

func (s *LedgerService) notifyAward(userID string, res *AwardResult, description string, taskID *string) {
	if s.Notifier != nil {
		s.Notifier.PointsEarned(userID, res.Points, description, taskID)
		if res.TierChanged {
			s.Notifier.PointsEarned(userID, res.TierBonus, fmt.Sprintf("Advanced to %s tier", res.NewTier), nil)
		}
		if res.NewLevel > res.OldLevel {
			s.Notifier.LevelUp(userID, res.NewLevel, res.OldLevel)
		}
	}
	if res.NewLevel > res.OldLevel && s.OnLevelUp != nil {
		s.OnLevelUp(userID, res.OldLevel, res.NewLevel)
	}
}

func completionTime(task *models.Task) time.Time {
	if task.CompletedAt != nil {
		return *task.CompletedAt
	}
	return time.Now().UTC()
}

// utcDate truncates to a date-only UTC value.
func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetTransactions returns the user's ledger history, newest first.
func (s *LedgerService) GetTransactions(userID string, page, size int) ([]models.PointTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	var total int64
	s.DB.Model(&models.PointTransaction{}).Where("external_user_id = ?", userID).Count(&total)

	var entries []models.PointTransaction
	err := s.DB.Where("external_user_id = ?", userID).
		Order("created_at DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&entries).Error
	return entries, total, err
}

// ResetProgress zeroes the aggregate (admin only). The ledger itself is
// append-only and keeps its history.
func (s *LedgerService) ResetProgress(userID string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}
		reset := models.UserProgress{
			ID:                    prog.ID,
			ExternalUserID:        prog.ExternalUserID,
			Level:                 1,
			NextLevelThreshold:    nextLevelThreshold(1),
			UserTier:              DefaultTierBands[0].Name,
			CurrentCharacterClass: DefaultCharacterClass,
			UnlockedCharacters:    []string{DefaultCharacterClass},
			CharacterLevel:        1,
			Timestamps:            prog.Timestamps,
		}
		return tx.Save(&reset).Error
	})
	if err == nil {
		log.Printf("♻️ [LEDGER] Progress reset for %s", userID)
	}
	return err
}
