// services/scheduler.go
package services

import (
	"log"
	"time"

	"task-gamification-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartGamificationScheduler runs the periodic sweeps: challenge expiry every
// few minutes, and a daily milestone/seasonal pass for users who were active
// in the last day.
func StartGamificationScheduler(challenges *ChallengeService, achievements *AchievementService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 10 minutes: deactivate ended challenges
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(challenges.ExpireEndedChallenges),
	)

	// Daily: milestone + seasonal sweep over recently active users
	_, _ = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 5, 0))),
		gocron.NewTask(func() {
			since := time.Now().UTC().AddDate(0, 0, -1)

			var userIDs []string
			err := achievements.DB.Model(&models.PointTransaction{}).
				Where("created_at >= ?", since).
				Distinct("external_user_id").
				Pluck("external_user_id", &userIDs).Error
			if err != nil {
				log.Printf("[Scheduler] daily sweep query failed: %v", err)
				return
			}

			for _, userID := range userIDs {
				prog, err := achievements.Ledger.EnsureProgress(userID)
				if err != nil {
					continue
				}
				achievements.checkCategory(userID, prog, models.CategoryMilestone)
				achievements.checkCategory(userID, prog, models.CategoryPoints)
				achievements.checkSeasonal(userID)
			}
			log.Printf("✅ [Scheduler] daily achievement sweep covered %d users", len(userIDs))
		}),
	)
}
