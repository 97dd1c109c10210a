package services

import (
	"fmt"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// TierBand is one lifetime-points band. Bands are configuration: the engine
// only picks the highest band whose threshold is covered.
type TierBand struct {
	Name      string
	Threshold int64 // lifetime points needed to enter the band
}

var DefaultTierBands = []TierBand{
	{Name: "bronze", Threshold: 0},
	{Name: "silver", Threshold: 100},
	{Name: "gold", Threshold: 500},
	{Name: "platinum", Threshold: 1500},
	{Name: "diamond", Threshold: 5000},
	{Name: "onyx", Threshold: 15000},
}

var tierTitleCaser = cases.Title(language.English)

// TierDisplayName renders a band name for UI ("bronze" → "Bronze").
func TierDisplayName(name string) string {
	return tierTitleCaser.String(name)
}

// TierService maps lifetime points onto tier bands and pays the one-time
// advancement bonus.
type TierService struct {
	DB       *gorm.DB
	Bands    []TierBand
	Notifier Notifier
}

func NewTierService(db *gorm.DB, notifier Notifier) *TierService {
	return &TierService{DB: db, Bands: DefaultTierBands, Notifier: notifier}
}

// Evaluate returns the band the aggregate's lifetime points fall into and
// whether that differs from the stored tier. Pure; no writes.
func (s *TierService) Evaluate(prog *models.UserProgress) (TierBand, int, bool) {
	idx := 0
	for i := len(s.Bands) - 1; i >= 0; i-- {
		if prog.TotalPointsEarned >= s.Bands[i].Threshold {
			idx = i
			break
		}
	}
	band := s.Bands[idx]
	return band, idx, band.Name != prog.UserTier
}

// UpdateTier re-evaluates the stored tier against lifetime points and pays
// the advancement bonus when a band was crossed. Idempotent: with no
// threshold crossing it is a no-op. Reports whether a band was crossed.
func (s *TierService) UpdateTier(userID string) (bool, error) {
	var (
		changed bool
		band    TierBand
		bonus   int64
		leveled struct{ old, new int }
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		var idx int
		band, idx, changed = s.Evaluate(prog)
		if !changed {
			return nil
		}

		bonus = int64(idx) * TierAdvancementBonus
		entry := models.PointTransaction{
			ID:              uuid.NewString(),
			ExternalUserID:  userID,
			Points:          bonus,
			TransactionType: models.TxTierAdvancement,
			Description:     fmt.Sprintf("Advanced to %s tier", band.Name),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		prog.UserTier = band.Name
		prog.LastTierUpAt = &now
		prog.CurrentPoints += bonus
		prog.TotalPointsEarned += bonus
		leveled.old = prog.Level
		applyLevelLoop(prog)
		leveled.new = prog.Level

		return tx.Save(prog).Error
	})
	if err != nil || !changed {
		return false, err
	}

	if s.Notifier != nil {
		s.Notifier.PointsEarned(userID, bonus, fmt.Sprintf("Advanced to %s tier", band.Name), nil)
		if leveled.new > leveled.old {
			s.Notifier.LevelUp(userID, leveled.new, leveled.old)
		}
	}
	return true, nil
}
