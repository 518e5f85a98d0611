package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email               string    `gorm:"uniqueIndex;not null"`
	EmailConfirmed      bool      `gorm:"not null;default:false"`
	FirstName           string    `gorm:"not null"`
	LastName            string    `gorm:"not null"`
	HashedPassword      string    `gorm:"not null"`
	Avatar              string    `gorm:"not null;default:'/uploads/avatars/default.png'"`
	Role                string    `gorm:"not null;default:'user';check:role IN ('user', 'admin')"`
	FailedLoginAttempts int       `gorm:"not null;default:0"`
	LockoutEnd          *time.Time
	LockoutEnabled      bool      `gorm:"not null;default:true"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time
}

// FullName is what activity timelines display for an actor.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Locked reports whether the account is currently locked out.
func (u *User) Locked(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.After(now)
}
