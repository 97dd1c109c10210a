package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks gamified progression for each user (denormalized for performance)
type UserProgress struct {
	ID             string `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to identity service

	// Core progression. CurrentPoints is the spendable balance and always
	// stays below NextLevelThreshold after an award; TotalPointsEarned is
	// lifetime and only ever goes up (redemptions touch CurrentPoints alone).
	Level              int   `json:"level" gorm:"default:1"`
	CurrentPoints      int64 `json:"current_points" gorm:"default:0"`
	TotalPointsEarned  int64 `json:"total_points_earned" gorm:"default:0"`
	NextLevelThreshold int64 `json:"next_level_threshold" gorm:"default:100"`

	// Streak state (UTC calendar days)
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`

	// Tier band over lifetime points: bronze → silver → gold → platinum → diamond → onyx
	UserTier string `json:"user_tier" gorm:"type:varchar(16);default:'bronze'"`

	// Activity counters (incremented by the achievement pipeline)
	TasksCompleted         int64 `json:"tasks_completed" gorm:"default:0"`
	TasksCreated           int64 `json:"tasks_created" gorm:"default:0"`
	CategoriesCreated      int64 `json:"categories_created" gorm:"default:0"`
	TagsUsed               int64 `json:"tags_used" gorm:"default:0"`
	FocusSessionsCompleted int64 `json:"focus_sessions_completed" gorm:"default:0"`
	TotalFocusMinutes      int64 `json:"total_focus_minutes" gorm:"default:0"`
	ChallengesCompleted    int64 `json:"challenges_completed" gorm:"default:0"`
	FamiliesJoined         int64 `json:"families_joined" gorm:"default:0"`
	EventsScheduled        int64 `json:"events_scheduled" gorm:"default:0"`
	SmartSchedulesUsed     int64 `json:"smart_schedules_used" gorm:"default:0"`
	ActivityDays           int64 `json:"activity_days" gorm:"default:0"` // distinct UTC days with activity

	// Secondary character track driven by focus sessions
	CurrentCharacterClass string   `json:"current_character_class" gorm:"type:varchar(32);default:'explorer'"`
	UnlockedCharacters    []string `json:"unlocked_characters" gorm:"serializer:json"`
	CharacterLevel        int      `json:"character_level" gorm:"default:1"`
	CharacterXP           int64    `json:"character_xp" gorm:"default:0"`

	// Milestones
	LastLevelUpAt  *time.Time `json:"last_level_up_at,omitempty"`
	LastTierUpAt   *time.Time `json:"last_tier_up_at,omitempty"`
	LastLoginClaim *time.Time `json:"last_login_claim,omitempty"` // UTC date of last daily-login award

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// HasUnlockedCharacter reports whether the class is in the unlocked set.
func (p *UserProgress) HasUnlockedCharacter(class string) bool {
	for _, c := range p.UnlockedCharacters {
		if c == class {
			return true
		}
	}
	return false
}
