package models

import (
	"strconv"
	"strings"
	"time"
)

// AchievementCategory groups catalog entries by the activity they count
type AchievementCategory string

const (
	CategoryProgress  AchievementCategory = "Progress"  // tasks completed
	CategoryCreation  AchievementCategory = "Creation"  // tasks created
	CategoryOrganizer AchievementCategory = "Organizer" // categories created
	CategoryTagging   AchievementCategory = "Tagging"   // tags used
	CategoryStreak    AchievementCategory = "Streak"    // consecutive active days
	CategoryFocus     AchievementCategory = "Focus"     // focus sessions / minutes
	CategoryLevel     AchievementCategory = "Level"     // level reached
	CategoryPoints    AchievementCategory = "Points"    // lifetime points
	CategoryFamily    AchievementCategory = "Family"    // family joins
	CategoryChallenge AchievementCategory = "Challenge" // challenges completed
	CategoryLogin     AchievementCategory = "Login"     // daily logins claimed
	CategoryPlanner   AchievementCategory = "Planner"   // scheduling / calendar usage
	CategoryMilestone AchievementCategory = "Milestone" // usage-day counts
	CategorySeasonal  AchievementCategory = "Seasonal"  // month-gated completions
)

// AchievementDifficulty drives the unlock point value
type AchievementDifficulty string

const (
	DifficultyBronze   AchievementDifficulty = "bronze"
	DifficultySilver   AchievementDifficulty = "silver"
	DifficultyGold     AchievementDifficulty = "gold"
	DifficultyPlatinum AchievementDifficulty = "platinum"
	DifficultyDiamond  AchievementDifficulty = "diamond"
	DifficultyOnyx     AchievementDifficulty = "onyx"
)

// Achievement is a static catalog entry (seeded at boot, ~170 rows).
// Criteria holds the numeric threshold as text; legacy rows carried
// free-form prefixes, so it is parsed leniently.
type Achievement struct {
	ID         uint                  `gorm:"primaryKey" json:"id"`
	Name       string                `gorm:"not null" json:"name"`
	Category   AchievementCategory   `gorm:"type:varchar(24);not null;index" json:"category"`
	Criteria   string                `gorm:"type:varchar(64);not null" json:"criteria"`
	Difficulty AchievementDifficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	PointValue int64                 `json:"point_value"` // 0 → derived from difficulty table
	IconURL    string                `gorm:"type:text" json:"icon_url,omitempty"`
	CreatedAt  time.Time             `json:"created_at" gorm:"autoCreateTime"`
}

// Threshold parses the numeric criteria. Returns 0 when unparseable.
func (a *Achievement) Threshold() int64 {
	s := strings.TrimSpace(a.Criteria)
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// UserAchievement is the per-user unlock record. (user, achievement) is
// unique; a completed row is permanent and re-unlock attempts must fail.
type UserAchievement struct {
	ID             string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string     `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"external_user_id"`
	AchievementID  uint       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Progress       int        `gorm:"default:0" json:"progress"` // 0–100
	IsCompleted    bool       `gorm:"default:false" json:"is_completed"`
	StartedAt      time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
