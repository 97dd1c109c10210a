package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"task-gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RewardService lets users spend CurrentPoints on catalog rewards.
// Redemption bypasses the award path entirely: no multipliers apply to
// spending, and TotalPointsEarned is never touched.
type RewardService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewRewardService(db *gorm.DB, notifier Notifier) *RewardService {
	return &RewardService{DB: db, Notifier: notifier}
}

// RedeemReward debits the balance once per call. Not idempotent: redeeming
// twice buys the reward twice.
func (s *RewardService) RedeemReward(userID string, rewardID uint) (*models.UserReward, error) {
	var redemption *models.UserReward

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownReward
			}
			return err
		}
		if !reward.IsActive {
			return ErrUnknownReward
		}

		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}
		if prog.Level < reward.MinimumLevel {
			return ErrLevelTooLow
		}
		if prog.CurrentPoints < reward.PointCost {
			return ErrInsufficientPoints
		}

		// Debit the spendable balance only; lifetime points are untouched.
		prog.CurrentPoints -= reward.PointCost
		if err := tx.Save(prog).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.PointTransaction{
			ID:              uuid.NewString(),
			ExternalUserID:  userID,
			Points:          -reward.PointCost,
			TransactionType: models.TxRewardRedemption,
			Description:     fmt.Sprintf("Redeemed: %s", reward.Name),
		}).Error; err != nil {
			return err
		}

		redemption = &models.UserReward{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			RewardID:       rewardID,
		}
		return tx.Create(redemption).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 [REWARDS] %s redeemed reward %d", userID, rewardID)
	return redemption, nil
}

// UseReward consumes a redeemed reward exactly once.
func (s *RewardService) UseReward(userID, userRewardID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var row models.UserReward
		err := tx.Where("id = ? AND external_user_id = ?", userRewardID, userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownReward
		}
		if err != nil {
			return err
		}
		if row.IsUsed {
			return ErrRewardAlreadyUsed
		}
		now := time.Now().UTC()
		row.IsUsed = true
		row.UsedAt = &now
		return tx.Save(&row).Error
	})
}

// ListRewards returns the active catalog.
func (s *RewardService) ListRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.DB.Where("is_active = ?", true).Order("point_cost ASC").Find(&rewards).Error
	return rewards, err
}

// ListUserRewards returns the user's redemptions, newest first.
func (s *RewardService) ListUserRewards(userID string) ([]models.UserReward, error) {
	var rows []models.UserReward
	err := s.DB.Where("external_user_id = ?", userID).
		Preload("Reward").
		Order("redeemed_at DESC").
		Find(&rows).Error
	return rows, err
}
