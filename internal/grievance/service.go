// Package grievance provides the core logic for the grievance lifecycle:
// creation with moderation screening, authorized reads, staff triage,
// and the admin statistics rollup.
package grievance

import (
	"context"
	"errors"
	"log"

	"github.com/lib/pq"

	"grievgo/backend/internal/models"
	"grievgo/backend/internal/moderation"
	"grievgo/backend/internal/notify"
	"grievgo/backend/internal/storage"
)

var (
	// ErrNotFound means no grievance matches the requested id.
	ErrNotFound = errors.New("grievance not found")
	// ErrForbidden means the caller is not allowed to see or mutate
	// the grievance.
	ErrForbidden = errors.New("forbidden")
)

// CreateInput is a student's submission. Binding tags enforce the
// enumerated schema; validation reports the first violation.
type CreateInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required,oneof=Academics Hostel Library Harassment Facilities Other"`
	Priority    string   `json:"priority" binding:"required,oneof=normal urgent"`
	IsAnonymous bool     `json:"isAnonymous"`
	Files       []string `json:"files"`
}

// UpdateInput is a staff/admin triage action. All fields are optional.
type UpdateInput struct {
	Status   string `json:"status" binding:"omitempty,oneof=pending under_review resolved rejected"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal urgent"`
	Comment  string `json:"comment"`
}

// Stats is the admin dashboard rollup. Resolved and pending never exceed
// the total; under_review and rejected count toward neither.
type Stats struct {
	Total         int            `json:"total"`
	Resolved      int            `json:"resolved"`
	Pending       int            `json:"pending"`
	CategoryStats map[string]int `json:"categoryStats"`
}

// Service handles the business logic for grievances.
type Service struct {
	Storage    storage.Storage
	Classifier moderation.Classifier
	Notifier   notify.Notifier // optional, may be nil
}

// NewService creates a new grievance service.
func NewService(s storage.Storage, c moderation.Classifier) *Service {
	return &Service{Storage: s, Classifier: c}
}

// Create screens the submission, persists it and appends the audit trail.
// A flagged submission starts under_review instead of pending and gets a
// second auto_flagged log entry. Log writes are advisory: a failed append
// is logged but does not fail the already-persisted submission.
func (s *Service) Create(ctx context.Context, user *models.User, input CreateInput) (*models.Grievance, error) {
	verdict := s.Classifier.Classify(ctx, input.Title+" "+input.Description)

	status := models.StatusPending
	var flagReason *string
	if verdict.IsFlagged {
		status = models.StatusUnderReview
		if verdict.Reason != "" {
			reason := verdict.Reason
			flagReason = &reason
		}
	}

	ownerID := user.ID
	grievance := &models.Grievance{
		UserID:      &ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Status:      status,
		Priority:    input.Priority,
		IsAnonymous: input.IsAnonymous,
		IsFlagged:   verdict.IsFlagged,
		FlagReason:  flagReason,
		Files:       pq.StringArray(input.Files),
	}
	if err := s.Storage.CreateGrievance(grievance); err != nil {
		return nil, err
	}

	s.appendLog(&models.GrievanceLog{
		GrievanceID: grievance.ID,
		UserID:      &ownerID,
		Action:      models.ActionCreated,
		Content:     "Grievance submitted",
	})

	if verdict.IsFlagged {
		s.appendLog(&models.GrievanceLog{
			GrievanceID: grievance.ID,
			UserID:      &ownerID,
			Action:      models.ActionAutoFlagged,
			Content:     "Flagged by AI: " + verdict.Reason,
		})
		if s.Notifier != nil {
			s.Notifier.GrievanceFlagged(grievance, verdict.Reason)
		}
	}

	return grievance, nil
}

// Get returns a grievance with its audit trail, newest entries first.
// A student may view a grievance only if they own it or it is anonymous;
// staff and admins may view any grievance.
func (s *Service) Get(user *models.User, id uint) (*models.Grievance, []models.GrievanceLog, error) {
	grievance, err := s.Storage.GetGrievanceByID(id)
	if err != nil {
		return nil, nil, err
	}
	if grievance == nil {
		return nil, nil, ErrNotFound
	}

	if user.Role == models.RoleStudent && !grievance.IsAnonymous && !owns(user, grievance) {
		return nil, nil, ErrForbidden
	}

	logs, err := s.Storage.GetGrievanceLogs(id)
	if err != nil {
		return nil, nil, err
	}
	return grievance, logs, nil
}

// List returns grievances newest first. Students are always restricted to
// their own submissions regardless of other filters; staff and admins see
// the full table narrowed by the optional status/category filters.
func (s *Service) List(user *models.User, status, category string) ([]models.Grievance, error) {
	filter := storage.GrievanceFilter{Status: status, Category: category}
	if user.Role == models.RoleStudent {
		ownerID := user.ID
		filter.UserID = &ownerID
	}
	return s.Storage.GetGrievances(filter)
}

// Update applies a triage action. Students may never call this. Provided
// status/priority fields are applied and summarized in a status_change
// log; a provided comment becomes a separate comment log.
func (s *Service) Update(user *models.User, id uint, input UpdateInput) (*models.Grievance, error) {
	if user.Role == models.RoleStudent {
		return nil, ErrForbidden
	}

	grievance, err := s.Storage.GetGrievanceByID(id)
	if err != nil {
		return nil, err
	}
	if grievance == nil {
		return nil, ErrNotFound
	}

	actorID := user.ID

	if input.Status != "" || input.Priority != "" {
		summary := "Updated:"
		if input.Status != "" {
			grievance.Status = input.Status
			summary += " Status to " + input.Status
		}
		if input.Priority != "" {
			grievance.Priority = input.Priority
			summary += " Priority to " + input.Priority
		}
		if err := s.Storage.UpdateGrievance(grievance); err != nil {
			return nil, err
		}
		s.appendLog(&models.GrievanceLog{
			GrievanceID: grievance.ID,
			UserID:      &actorID,
			Action:      models.ActionStatusChange,
			Content:     summary,
		})
	}

	if input.Comment != "" {
		s.appendLog(&models.GrievanceLog{
			GrievanceID: grievance.ID,
			UserID:      &actorID,
			Action:      models.ActionComment,
			Content:     input.Comment,
		})
	}

	return grievance, nil
}

// Stats recomputes the dashboard rollup from the full grievance set.
func (s *Service) Stats() (*Stats, error) {
	grievances, err := s.Storage.GetGrievances(storage.GrievanceFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{CategoryStats: make(map[string]int)}
	for _, g := range grievances {
		stats.Total++
		switch g.Status {
		case models.StatusResolved:
			stats.Resolved++
		case models.StatusPending:
			stats.Pending++
		}
		stats.CategoryStats[g.Category]++
	}
	return stats, nil
}

func (s *Service) appendLog(entry *models.GrievanceLog) {
	if err := s.Storage.CreateGrievanceLog(entry); err != nil {
		log.Printf("ERROR: Audit log append (%s) lost for grievance %d: %v",
			entry.Action, entry.GrievanceID, err)
	}
}

func owns(user *models.User, grievance *models.Grievance) bool {
	return grievance.UserID != nil && *grievance.UserID == user.ID
}
