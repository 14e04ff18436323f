package models

import (
	"time"

	"github.com/lib/pq" // needed for pq.StringArray
)

// Grievance statuses. A submission starts at pending, or under_review
// when the moderation check flags it.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusResolved    = "resolved"
	StatusRejected    = "rejected"
)

// Grievance priorities.
const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgent"
)

// Grievance categories.
const (
	CategoryAcademics  = "Academics"
	CategoryHostel     = "Hostel"
	CategoryLibrary    = "Library"
	CategoryHarassment = "Harassment"
	CategoryFacilities = "Facilities"
	CategoryOther      = "Other"
)

// Grievance is the central entity of the portal: a complaint filed by a
// student, triaged by staff. The owner is always recorded, even for
// anonymous submissions; anonymity only hides the identity from viewers.
type Grievance struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      *uint          `gorm:"index" json:"userId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Category    string         `gorm:"type:text;not null" json:"category"`
	Status      string         `gorm:"type:text;not null;default:pending" json:"status"`
	Priority    string         `gorm:"type:text;not null;default:normal" json:"priority"`
	IsAnonymous bool           `gorm:"not null;default:false" json:"isAnonymous"`
	IsFlagged   bool           `gorm:"not null;default:false" json:"isFlagged"`
	FlagReason  *string        `json:"flagReason"`
	Files       pq.StringArray `gorm:"type:text[]" json:"files"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
