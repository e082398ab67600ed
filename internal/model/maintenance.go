package model

import "time"

// Maintenance request status values. No endpoint currently transitions a
// request out of pending; completed exists so the lifecycle can grow
// without a schema change.
const (
	MaintenancePending   = "pending"
	MaintenanceCompleted = "completed"
)

// MaintenanceRequest records a scheduled service visit for a bin.
// Requests are deleted together with their bin.
type MaintenanceRequest struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	BinID       int64      `gorm:"not null;index" json:"bin_id"`
	Type        string     `gorm:"size:64;not null" json:"type"`
	Status      string     `gorm:"size:32;not null" json:"status"`
	Notes       string     `gorm:"size:512" json:"notes"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Associations
	Bin Bin `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
