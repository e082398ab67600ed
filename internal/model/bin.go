package model

import "time"

// Bin represents a single waste bin and its last known fill level.
//
// Status is intentionally not a column: it is always derived from FillLevel
// and Capacity at serialization time, so it can never drift from the data
// it is computed from.
type Bin struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	City        string    `gorm:"size:128;not null;index" json:"city"`
	Lat         float64   `gorm:"not null" json:"lat"`
	Lon         float64   `gorm:"not null" json:"lon"`
	Capacity    int       `gorm:"not null;default:100" json:"capacity"`
	FillLevel   int       `gorm:"not null" json:"fill_level"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
