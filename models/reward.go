package models

import (
	"time"
)

// Reward is a spendable catalog entry: redeemed against CurrentPoints,
// gated by level. Redemptions are never refunded automatically.
type Reward struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	IconURL      string    `gorm:"type:text" json:"icon_url"`
	PointCost    int64     `gorm:"not null" json:"point_cost"`
	MinimumLevel int       `gorm:"default:1" json:"minimum_level"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserReward is one redemption. Not unique per (user, reward): the same
// reward can be bought repeatedly, each purchase debits the balance again.
type UserReward struct {
	ID             string     `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string     `gorm:"not null;index" json:"external_user_id"`
	RewardID       uint       `gorm:"not null;index" json:"reward_id"`
	IsUsed         bool       `gorm:"default:false" json:"is_used"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
	RedeemedAt     time.Time  `json:"redeemed_at" gorm:"autoCreateTime"`

	Reward *Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}

var RewardSeed = []Reward{
	{ID: 1, Name: "Custom Avatar Frame", Description: "A decorative frame for your avatar", PointCost: 100, MinimumLevel: 1},
	{ID: 2, Name: "Profile Theme Pack", Description: "Extra color themes for your profile", PointCost: 250, MinimumLevel: 3},
	{ID: 3, Name: "Animated Celebration", Description: "Confetti burst on task completion", PointCost: 500, MinimumLevel: 5},
	{ID: 4, Name: "Golden Task Card", Description: "Gilded styling for one pinned task", PointCost: 750, MinimumLevel: 8},
	{ID: 5, Name: "Family Banner", Description: "A shared banner for your family page", PointCost: 1000, MinimumLevel: 10},
	{ID: 6, Name: "Legendary Nameplate", Description: "Animated nameplate on leaderboards", PointCost: 2500, MinimumLevel: 20},
}
