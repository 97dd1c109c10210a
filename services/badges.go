package services

import (
	"errors"
	"fmt"
	"log"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BadgeService awards badges. A duplicate award is a caller bug (badges are
// awarded from a single code path), so it fails loudly instead of being
// absorbed.
type BadgeService struct {
	DB       *gorm.DB
	Ledger   *LedgerService
	Notifier Notifier
}

func NewBadgeService(db *gorm.DB, ledger *LedgerService, notifier Notifier) *BadgeService {
	return &BadgeService{DB: db, Ledger: ledger, Notifier: notifier}
}

// AwardBadge grants the badge once per (user, badge) pair and pays its
// rarity value through the ledger.
func (s *BadgeService) AwardBadge(userID string, badgeID uint) error {
	var badge models.Badge

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&badge, badgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownBadge
			}
			return err
		}

		var existing int64
		tx.Model(&models.UserBadge{}).
			Where("external_user_id = ? AND badge_id = ?", userID, badgeID).
			Count(&existing)
		if existing > 0 {
			return ErrBadgeAlreadyAwarded
		}

		return tx.Create(&models.UserBadge{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			BadgeID:        badgeID,
		}).Error
	})
	if err != nil {
		return err
	}

	points := BadgePointValue(&badge)
	if _, err := s.Ledger.Award(userID, points, models.TxBadge,
		fmt.Sprintf("Badge earned: %s", badge.Name), nil); err != nil {
		log.Printf("⚠️ [BADGES] payout for %q to %s failed: %v", badge.Name, userID, err)
	}

	if s.Notifier != nil {
		s.Notifier.BadgeEarned(userID, badge.Name, badge.ID, badge.Rarity)
	}
	log.Printf("🎖️ [BADGES] %s earned %q (%s, +%d)", userID, badge.Name, badge.Rarity, points)
	return nil
}

// SetBadgeDisplayed toggles whether the badge shows on the user's profile.
func (s *BadgeService) SetBadgeDisplayed(userID string, badgeID uint, displayed bool) error {
	res := s.DB.Model(&models.UserBadge{}).
		Where("external_user_id = ? AND badge_id = ?", userID, badgeID).
		Update("is_displayed", displayed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnknownBadge
	}
	return nil
}

// ListUserBadges returns the user's badges, newest first.
func (s *BadgeService) ListUserBadges(userID string) ([]models.UserBadge, error) {
	var rows []models.UserBadge
	err := s.DB.Where("external_user_id = ?", userID).
		Preload("Badge").
		Order("awarded_at DESC").
		Find(&rows).Error
	return rows, err
}
