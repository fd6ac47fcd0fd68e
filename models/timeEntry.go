package models

import "time"

// TimeEntry records labour time against an order. Break-duration and
// timezone arithmetic live with the time-tracking service; this engine only
// owns the rows' lifecycle (they are removed with their order).
type TimeEntry struct {
	ID        int       `gorm:"primary_key" json:"id"`
	OrderId   int       `gorm:"index;not null" json:"order_id" binding:"required"`
	UserId    int       `gorm:"index;not null" json:"user_id" binding:"required"`
	StartedAt time.Time `gorm:"not null" json:"started_at"`
	Minutes   int       `gorm:"default:0" json:"minutes"`
	Notes     string    `gorm:"size:255" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
