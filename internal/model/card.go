package model

import (
	"time"

	"github.com/google/uuid"
)

// Due date reminder offsets.
const (
	ReminderNone  = "none"
	Reminder1Day  = "1day"
	Reminder1Hour = "1hour"
	Reminder30Min = "30min"
)

type Card struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"not null"`
	Description     string
	StartDate       *time.Time
	DueDate         *time.Time
	DueDateReminder string     `gorm:"not null;default:'none';check:due_date_reminder IN ('none', '1day', '1hour', '30min')"`
	Order           int        `gorm:"column:order;not null"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy       *uuid.UUID `gorm:"type:uuid"`
	IsDeleted       bool       `gorm:"not null;default:false"`
	DeletedBy       *uuid.UUID `gorm:"type:uuid"`
	DeletedAt       *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time

	List     List `gorm:"foreignKey:ListID"`
	Assignee User `gorm:"foreignKey:AssignedTo"`
	Creator  User `gorm:"foreignKey:CreatedBy"`
}
