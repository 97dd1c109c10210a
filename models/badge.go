package models

import (
	"time"
)

// BadgeRarity drives the award point value
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge: static config (seeded at boot, extendable by admins)
type Badge struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"uniqueIndex;not null" json:"code"` // e.g. "streak-warrior"
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	IconURL     string      `gorm:"type:text" json:"icon_url"` // R2 URL to SVG/png
	Rarity      BadgeRarity `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	PointValue  int64       `json:"point_value"` // 0 → derived from rarity
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

// UserBadge: awarded instance; (user, badge) is unique and a duplicate award
// is a caller bug, not an expected race.
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string    `gorm:"not null;index;uniqueIndex:idx_user_badge" json:"external_user_id"`
	BadgeID        uint      `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	IsDisplayed    bool      `gorm:"default:true" json:"is_displayed"`
	AwardedAt      time.Time `json:"awarded_at" gorm:"autoCreateTime"`

	Badge *Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

// Seed badges. Challenge payouts reference these by ID.
var BadgeSeed = []Badge{
	{ID: 1, Code: "welcome-aboard", Name: "Welcome Aboard", Description: "Joined the platform", Rarity: RarityCommon},
	{ID: 2, Code: "streak-warrior", Name: "Streak Warrior", Description: "Kept a 30 day streak alive", Rarity: RarityRare},
	{ID: 3, Code: "focus-sprinter", Name: "Focus Sprinter", Description: "Completed a week-long focus challenge", Rarity: RarityRare},
	{ID: 4, Code: "family-anchor", Name: "Family Anchor", Description: "Completed a family challenge", Rarity: RarityEpic},
	{ID: 5, Code: "task-crusher", Name: "Task Crusher", Description: "Completed a task blitz challenge", Rarity: RarityRare},
	{ID: 6, Code: "night-shift", Name: "Night Shift", Description: "Completed a late-night challenge", Rarity: RarityEpic},
	{ID: 7, Code: "perfect-month", Name: "Perfect Month", Description: "Active every day of a calendar month", Rarity: RarityLegendary},
}
