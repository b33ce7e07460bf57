package domain

import "time"

// Exercise is a catalog leaf. Groups never own exercises; configurations
// only reference them.
type Exercise struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        *string   `json:"name,omitempty"`
	Description string    `gorm:"not null" json:"description"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
	HasMethod   bool      `gorm:"not null;default:true" json:"hasMethod"`
	CreatedAt   time.Time `json:"createdAt"`
}
