package models

import (
	"time"
)

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Username          string    `gorm:"uniqueIndex;not null" json:"username"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"not null" json:"-"` // bcrypt hash, hidden from JSON
	ProfilePicture    []byte    `json:"profilePicture,omitempty"`
	Verified          bool      `gorm:"default:false" json:"verified"`
	VerificationToken string    `json:"-"` // pending one-time code, empty once consumed
	ProgressPoints    int       `gorm:"not null;default:0" json:"progressPoints"`
	JoinedDate        time.Time `gorm:"autoCreateTime" json:"joinedDate"`
}

// Level is derived from progress points and never stored: 0-99 points is
// level 1, 100-199 is level 2, and so on.
func (u *User) Level() int {
	if u.ProgressPoints < 0 {
		return 1
	}
	return 1 + u.ProgressPoints/100
}
