package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is an agenda entry. ScheduledDate is a calendar day with no time
// component, kept as a YYYY-MM-DD string; nil means the task sits in the
// unscheduled list. AssignedUserID is nil for unassigned tasks.
type Task struct {
	ID             uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title          string     `json:"title" gorm:"not null"`
	Description    *string    `json:"description"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id" gorm:"type:uuid;index"`
	ScheduledDate  *string    `json:"scheduled_date" gorm:"type:varchar(10);index"`
	Priority       Priority   `json:"priority" gorm:"type:varchar(10);not null;default:'medium'"`
	Completed      bool       `json:"completed" gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined in on listing, never written back.
	AssignedUserName *string `json:"assigned_user_name,omitempty" gorm:"->;-:migration"`
}

func (t *Task) IsScheduled() bool {
	return t.ScheduledDate != nil && *t.ScheduledDate != ""
}
