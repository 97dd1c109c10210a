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

// MaxActiveEnrollments caps concurrent non-completed challenge enrollments
// per user.
const MaxActiveEnrollments = 2

// ChallengeService handles enrollment, progress increments and completion
// payouts for time-boxed challenges.
type ChallengeService struct {
	DB           *gorm.DB
	Ledger       *LedgerService
	Badges       *BadgeService
	Achievements *AchievementService
}

func NewChallengeService(db *gorm.DB, ledger *LedgerService, badges *BadgeService, achievements *AchievementService) *ChallengeService {
	return &ChallengeService{DB: db, Ledger: ledger, Badges: badges, Achievements: achievements}
}

// Join enrolls the user: the challenge must be active and inside its window,
// the user must meet the lifetime-points requirement, and at most
// MaxActiveEnrollments non-completed enrollments may exist.
func (s *ChallengeService) Join(userID string, challengeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var challenge models.Challenge
		if err := tx.First(&challenge, challengeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownChallenge
			}
			return err
		}
		if !challenge.IsActive || time.Now().UTC().After(challenge.EndDate) {
			return ErrChallengeNotJoinable
		}

		var existing int64
		tx.Model(&models.UserChallenge{}).
			Where("external_user_id = ? AND challenge_id = ?", userID, challengeID).
			Count(&existing)
		if existing > 0 {
			return ErrAlreadyJoined
		}

		var active int64
		tx.Model(&models.ChallengeProgress{}).
			Where("external_user_id = ? AND is_completed = ?", userID, false).
			Count(&active)
		if active >= MaxActiveEnrollments {
			return ErrEnrollmentLimit
		}

		prog, err := ensureProgress(tx, userID)
		if err != nil {
			return err
		}
		if prog.TotalPointsEarned < challenge.PointsRequired {
			return ErrInsufficientPoints
		}

		// Enrollment record and progress row live and die together.
		if err := tx.Create(&models.UserChallenge{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			ChallengeID:    challengeID,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChallengeProgress{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			ChallengeID:    challengeID,
		}).Error
	})
}

// Leave removes both the progress and enrollment rows; no partial credit
// carries over.
func (s *ChallengeService) Leave(userID string, challengeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("external_user_id = ? AND challenge_id = ?", userID, challengeID).
			Delete(&models.UserChallenge{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotEnrolled
		}
		return tx.Where("external_user_id = ? AND challenge_id = ?", userID, challengeID).
			Delete(&models.ChallengeProgress{}).Error
	})
}

// ProcessProgress scans the user's active enrollments and advances every one
// whose challenge matches the activity. Completions pay out after commit.
func (s *ChallengeService) ProcessProgress(userID string, activity models.ActivityType, relatedEntityID string) error {
	var completed []models.Challenge

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var rows []models.ChallengeProgress
		if err := tx.Where("external_user_id = ? AND is_completed = ?", userID, false).
			Find(&rows).Error; err != nil {
			return err
		}

		for i := range rows {
			var challenge models.Challenge
			if err := tx.First(&challenge, rows[i].ChallengeID).Error; err != nil {
				continue
			}
			if challenge.ActivityType != activity || !challenge.IsActive || now.After(challenge.EndDate) {
				continue
			}

			rows[i].CurrentProgress++
			if rows[i].CurrentProgress >= challenge.TargetCount {
				rows[i].IsCompleted = true
				rows[i].CompletedAt = &now
				completed = append(completed, challenge)
			}
			if err := tx.Save(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, challenge := range completed {
		s.payout(userID, challenge)
	}
	return nil
}

// payout awards the point reward, any linked badge, and bumps the completion
// counter. All best-effort: the progress row is already committed complete.
func (s *ChallengeService) payout(userID string, challenge models.Challenge) {
	if _, err := s.Ledger.Award(userID, challenge.PointReward, models.TxChallenge,
		fmt.Sprintf("Completed challenge: %s", challenge.Name), nil); err != nil {
		log.Printf("⚠️ [CHALLENGES] payout for %q to %s failed: %v", challenge.Name, userID, err)
	}

	if challenge.RewardBadgeID != nil {
		err := s.Badges.AwardBadge(userID, *challenge.RewardBadgeID)
		if err != nil && !errors.Is(err, ErrBadgeAlreadyAwarded) {
			log.Printf("⚠️ [CHALLENGES] badge payout for %q to %s failed: %v", challenge.Name, userID, err)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}
		prog.ChallengesCompleted++
		return tx.Save(prog).Error
	})
	if err != nil {
		log.Printf("⚠️ [CHALLENGES] completion counter for %s failed: %v", userID, err)
	}

	if s.Achievements != nil {
		s.Achievements.CheckChallengeMilestones(userID)
	}
	log.Printf("🏁 [CHALLENGES] %s completed %q (+%d)", userID, challenge.Name, challenge.PointReward)
}

// ListUserChallenges returns enrollments with challenge and progress data.
type UserChallengeView struct {
	Challenge       models.Challenge `json:"challenge"`
	CurrentProgress int              `json:"current_progress"`
	IsCompleted     bool             `json:"is_completed"`
	EnrolledAt      time.Time        `json:"enrolled_at"`
}

func (s *ChallengeService) ListUserChallenges(userID string) ([]UserChallengeView, error) {
	var enrollments []models.UserChallenge
	if err := s.DB.Where("external_user_id = ?", userID).
		Preload("Challenge").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	views := make([]UserChallengeView, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Challenge == nil {
			continue
		}
		var progress models.ChallengeProgress
		s.DB.Where("external_user_id = ? AND challenge_id = ?", userID, e.ChallengeID).
			First(&progress)
		views = append(views, UserChallengeView{
			Challenge:       *e.Challenge,
			CurrentProgress: progress.CurrentProgress,
			IsCompleted:     progress.IsCompleted,
			EnrolledAt:      e.EnrolledAt,
		})
	}
	return views, nil
}

// ListOpenChallenges returns joinable challenges.
func (s *ChallengeService) ListOpenChallenges() ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := s.DB.Where("is_active = ? AND end_date > ?", true, time.Now().UTC()).
		Order("end_date ASC").
		Find(&challenges).Error
	return challenges, err
}

// ExpireEndedChallenges deactivates challenges past their window. Run from
// the scheduler.
func (s *ChallengeService) ExpireEndedChallenges() {
	res := s.DB.Model(&models.Challenge{}).
		Where("is_active = ? AND end_date <= ?", true, time.Now().UTC()).
		Update("is_active", false)
	if res.Error != nil {
		log.Printf("[Scheduler] challenge expiry sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ [CHALLENGES] deactivated %d ended challenges", res.RowsAffected)
	}
}
