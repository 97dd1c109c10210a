package models

import (
	"time"
)

// TransactionType tags every ledger entry with the activity that produced it
type TransactionType string

const (
	TxTaskCompletion    TransactionType = "task_completion"
	TxDailyLogin        TransactionType = "daily_login"
	TxFocusSession      TransactionType = "focus_session"
	TxAchievement       TransactionType = "achievement"
	TxBadge             TransactionType = "badge"
	TxChallenge         TransactionType = "challenge"
	TxRewardRedemption  TransactionType = "reward_redemption"
	TxTierAdvancement   TransactionType = "tier_advancement"
	TxCharacterLevelUp  TransactionType = "character_levelup"
	TxStreakMaintenance TransactionType = "streak_maintenance"
	TxManualAdjustment  TransactionType = "manual_adjustment"
)

// PointTransaction is an append-only ledger row. Points are signed: positive
// for awards, negative for redemptions. The running balance lives on
// UserProgress; this table is the audit trail behind it.
type PointTransaction struct {
	ID              string          `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID  string          `gorm:"index;not null" json:"external_user_id"`
	Points          int64           `gorm:"not null" json:"points"`
	TransactionType TransactionType `gorm:"type:varchar(32);not null;index" json:"transaction_type"`
	Description     string          `gorm:"type:text" json:"description"`

	// Weak reference: nulled when the source task no longer exists.
	// Task deletion must never be blocked by ledger history.
	TaskID *string `gorm:"type:uuid;index" json:"task_id,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
