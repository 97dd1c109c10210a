package models

import (
	"time"
)

// ActivityType is the vocabulary shared by the achievement and challenge
// pipelines; the task/focus/family/calendar subsystems report activity in
// these terms.
type ActivityType string

const (
	ActivityTaskCompletion   ActivityType = "task_completion"
	ActivityTaskCreation     ActivityType = "task_creation"
	ActivityCategoryCreation ActivityType = "category_creation"
	ActivityTagUsage         ActivityType = "tag_usage"
	ActivityFocusSession     ActivityType = "focus_session"
	ActivityFamilyJoin       ActivityType = "family_join"
	ActivityDailyLogin       ActivityType = "daily_login"
	ActivityStreakUpdated    ActivityType = "streak_updated"
	ActivityEventScheduled   ActivityType = "event_scheduled"
	ActivitySmartScheduling  ActivityType = "smart_scheduling"
)

// Challenge is a time-boxed, opt-in goal with a progress counter.
type Challenge struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"not null" json:"name"`
	Description    string       `gorm:"type:text" json:"description"`
	ActivityType   ActivityType `gorm:"type:varchar(32);not null;index" json:"activity_type"`
	TargetCount    int          `gorm:"not null" json:"target_count"`
	PointReward    int64        `gorm:"not null" json:"point_reward"`
	RewardBadgeID  *uint        `json:"reward_badge_id,omitempty"`        // optional badge payout
	PointsRequired int64        `gorm:"default:0" json:"points_required"` // lifetime points needed to join
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	IsActive       bool         `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

// UserChallenge is the enrollment record; created and removed together with
// the matching ChallengeProgress row.
type UserChallenge struct {
	ID             string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string    `gorm:"not null;index;uniqueIndex:idx_user_challenge" json:"external_user_id"`
	ChallengeID    uint      `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challenge_id"`
	EnrolledAt     time.Time `json:"enrolled_at" gorm:"autoCreateTime"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
}

// ChallengeProgress is the authoritative progress row for an enrollment.
type ChallengeProgress struct {
	ID              string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID  string     `gorm:"not null;index;uniqueIndex:idx_challenge_progress" json:"external_user_id"`
	ChallengeID     uint       `gorm:"not null;uniqueIndex:idx_challenge_progress" json:"challenge_id"`
	CurrentProgress int        `gorm:"default:0" json:"current_progress"`
	IsCompleted     bool       `gorm:"default:false;index" json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	Timestamps
}

// badgeRef is return-by-value friendly sugar for optional badge IDs in seeds.
func badgeRef(id uint) *uint { return &id }

var ChallengeSeed = []Challenge{
	{ID: 1, Name: "Task Blitz", Description: "Complete 20 tasks this week", ActivityType: ActivityTaskCompletion,
		TargetCount: 20, PointReward: 300, RewardBadgeID: badgeRef(5), PointsRequired: 0},
	{ID: 2, Name: "Deep Focus Week", Description: "Finish 10 focus sessions", ActivityType: ActivityFocusSession,
		TargetCount: 10, PointReward: 400, RewardBadgeID: badgeRef(3), PointsRequired: 100},
	{ID: 3, Name: "Planning Spree", Description: "Create 15 new tasks", ActivityType: ActivityTaskCreation,
		TargetCount: 15, PointReward: 200, PointsRequired: 0},
	{ID: 4, Name: "Calendar Month", Description: "Schedule 8 events", ActivityType: ActivityEventScheduled,
		TargetCount: 8, PointReward: 250, PointsRequired: 50},
	{ID: 5, Name: "Family Effort", Description: "Complete 30 tasks as a family member", ActivityType: ActivityTaskCompletion,
		TargetCount: 30, PointReward: 600, RewardBadgeID: badgeRef(4), PointsRequired: 500},
}
