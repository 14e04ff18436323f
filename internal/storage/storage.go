package storage

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"grievgo/backend/internal/config"
	"grievgo/backend/internal/models"
)

// GrievanceFilter narrows a grievance listing. A nil UserID means
// no ownership restriction; empty strings mean no status/category filter.
type GrievanceFilter struct {
	UserID   *uint
	Status   string
	Category string
}

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	CreateGrievance(grievance *models.Grievance) error
	GetGrievanceByID(id uint) (*models.Grievance, error)
	GetGrievances(filter GrievanceFilter) ([]models.Grievance, error)
	UpdateGrievance(grievance *models.Grievance) error

	CreateGrievanceLog(entry *models.GrievanceLog) error
	GetGrievanceLogs(grievanceID uint) ([]models.GrievanceLog, error)

	CreateSession(userID uint) (string, error)
	GetSessionUserID(sessionID string) (uint, bool, error)
	DeleteSession(sessionID string) error
}

// Service backs the Storage interface with PostgreSQL (rows) and
// Redis (sessions).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser persists a new user in PostgreSQL.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", user.Username, err)
		return err
	}
	return nil
}

// GetUserByID returns the user or nil when no row matches.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user or nil when no row matches.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateGrievance persists a new grievance. The ID is filled in by GORM.
func (s *Service) CreateGrievance(grievance *models.Grievance) error {
	if err := s.DB.Create(grievance).Error; err != nil {
		log.Printf("ERROR: Failed to create grievance %q: %v", grievance.Title, err)
		return err
	}
	return nil
}

// GetGrievanceByID returns the grievance or nil when no row matches.
func (s *Service) GetGrievanceByID(id uint) (*models.Grievance, error) {
	var grievance models.Grievance
	err := s.DB.First(&grievance, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

// GetGrievances lists grievances matching the filter, newest first.
func (s *Service) GetGrievances(filter GrievanceFilter) ([]models.Grievance, error) {
	query := s.DB.Model(&models.Grievance{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var grievances []models.Grievance
	if err := query.Order("created_at desc").Find(&grievances).Error; err != nil {
		log.Printf("ERROR: Failed to list grievances: %v", err)
		return nil, err
	}
	return grievances, nil
}

// UpdateGrievance saves a mutated grievance. GORM refreshes UpdatedAt.
func (s *Service) UpdateGrievance(grievance *models.Grievance) error {
	return s.DB.Save(grievance).Error
}

// CreateGrievanceLog appends an audit trail entry.
func (s *Service) CreateGrievanceLog(entry *models.GrievanceLog) error {
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("ERROR: Failed to append %s log for grievance %d: %v",
			entry.Action, entry.GrievanceID, err)
		return err
	}
	return nil
}

// GetGrievanceLogs returns the audit trail for a grievance, newest first.
func (s *Service) GetGrievanceLogs(grievanceID uint) ([]models.GrievanceLog, error) {
	var logs []models.GrievanceLog
	err := s.DB.Where("grievance_id = ?", grievanceID).
		Order("created_at desc").
		Find(&logs).Error
	if err != nil {
		log.Printf("ERROR: Failed to get logs for grievance %d: %v", grievanceID, err)
		return nil, err
	}
	return logs, nil
}

// CreateSession stores a new opaque session id in Redis with the
// configured TTL and returns it.
func (s *Service) CreateSession(userID uint) (string, error) {
	sessionID := uuid.New().String()
	key := config.SessionKeyPrefix + sessionID
	if err := s.Redis.Set(s.Ctx, key, userID, config.SessionTTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

// GetSessionUserID resolves a session id to a user id.
// The second return value is false when the session does not exist.
func (s *Service) GetSessionUserID(sessionID string) (uint, bool, error) {
	key := config.SessionKeyPrefix + sessionID
	userID, err := s.Redis.Get(s.Ctx, key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint(userID), true, nil
}

// DeleteSession invalidates a session. Deleting an unknown id is a no-op.
func (s *Service) DeleteSession(sessionID string) error {
	return s.Redis.Del(s.Ctx, config.SessionKeyPrefix+sessionID).Err()
}
