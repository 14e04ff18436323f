package models

import "time"

// Log action kinds.
const (
	ActionCreated      = "created"
	ActionAutoFlagged  = "auto_flagged"
	ActionStatusChange = "status_change"
	ActionComment      = "comment"
)

// GrievanceLog is an append-only audit trail entry tied to one grievance.
// Entries are never updated or deleted; display order is newest first.
// UserID is nil for system actions.
type GrievanceLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GrievanceID uint      `gorm:"not null;index" json:"grievanceId"`
	UserID      *uint     `json:"userId"`
	Action      string    `gorm:"not null" json:"action"`
	Content     string    `gorm:"type:text" json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}
