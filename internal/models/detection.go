package models

import (
	"time"
)

// Detection is one classification result submitted by the app. The composite
// unique index enforces at most one detection per (user, class).
type Detection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_class" json:"userId"`
	ClassName   string    `gorm:"not null;uniqueIndex:idx_user_class" json:"className"`
	Probability float64   `gorm:"not null" json:"probability"`
	Image       []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
