package models

import (
	"time"

	"gorm.io/gorm"
)

// Read-side entities owned by the task backend. The engine only ever reads
// them: Task for point-calculation context and existence checks, FocusSession
// for the character track, Family/FamilyMember for collaboration bonuses and
// leaderboard scoping.

type Task struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string     `gorm:"index;not null" json:"external_user_id"`
	Title          string     `json:"title"`
	Priority       string     `gorm:"type:varchar(16)" json:"priority"` // low, medium, high, critical
	DueDate        *time.Time `json:"due_date,omitempty"`
	IsCompleted    bool       `gorm:"default:false;index" json:"is_completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	// Family linkage drives the collaboration bonus
	FamilyID           *string `gorm:"type:uuid;index" json:"family_id,omitempty"`
	AssignedToMemberID *string `gorm:"type:uuid" json:"assigned_to_member_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type FocusSession struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID  string     `gorm:"index;not null" json:"external_user_id"`
	TaskID          *string    `gorm:"type:uuid" json:"task_id,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	IsCompleted     bool       `gorm:"default:false" json:"is_completed"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

type Family struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FamilyMember ties an external user into a family. Mirrored from the family
// service by the membership sync worker.
type FamilyMember struct {
	ID             string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	FamilyID       string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_family_member" json:"family_id"`
	ExternalUserID string    `gorm:"not null;index;uniqueIndex:idx_family_member" json:"external_user_id"`
	Role           string    `gorm:"type:varchar(16);default:'member'" json:"role"`
	JoinedAt       time.Time `json:"joined_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
