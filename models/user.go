package models

import (
	"time"

	"gorm.io/gorm"
)

// DirectoryUser is a local snapshot of identity data needed for leaderboard
// display. Owned and managed solely by this service; populated via sync
// worker from the identity service's user directory.
type DirectoryUser struct {
	ID             string  `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"` // the identity service's UUID
	Username       string  `gorm:"index;not null" json:"username"`
	DisplayName    *string `json:"display_name,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RemoteUser mirrors the wire shape of the identity service's public profile
// feed, consumed by the directory sync worker.
type RemoteUser struct {
	ExternalID  string     `json:"external_id"`
	Username    string     `json:"username"`
	DisplayName *string    `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// RemoteFamilyMember mirrors the family service's membership feed.
type RemoteFamilyMember struct {
	FamilyID       string     `json:"family_id"`
	FamilyName     string     `json:"family_name"`
	ExternalUserID string     `json:"user_id"`
	Role           string     `json:"role"`
	JoinedAt       time.Time  `json:"joined_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	RemovedAt      *time.Time `json:"removed_at"`
}
