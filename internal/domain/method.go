package domain

import "time"

// Method is a training technique from the catalog (e.g. drop-set, rest-pause).
// Configurations reference it optionally.
type Method struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
