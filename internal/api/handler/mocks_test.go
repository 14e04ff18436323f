package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"grievgo/backend/internal/models"
	"grievgo/backend/internal/moderation"
	"grievgo/backend/internal/storage"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Grievance operations
func (m *MockStorage) CreateGrievance(grievance *models.Grievance) error {
	args := m.Called(grievance)
	return args.Error(0)
}

func (m *MockStorage) GetGrievanceByID(id uint) (*models.Grievance, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grievance), args.Error(1)
}

func (m *MockStorage) GetGrievances(filter storage.GrievanceFilter) ([]models.Grievance, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grievance), args.Error(1)
}

func (m *MockStorage) UpdateGrievance(grievance *models.Grievance) error {
	args := m.Called(grievance)
	return args.Error(0)
}

// Log operations
func (m *MockStorage) CreateGrievanceLog(entry *models.GrievanceLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockStorage) GetGrievanceLogs(grievanceID uint) ([]models.GrievanceLog, error) {
	args := m.Called(grievanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GrievanceLog), args.Error(1)
}

// Session operations
func (m *MockStorage) CreateSession(userID uint) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetSessionUserID(sessionID string) (uint, bool, error) {
	args := m.Called(sessionID)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *MockStorage) DeleteSession(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

// MockClassifier is a mock moderation.Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string) moderation.Verdict {
	args := m.Called(ctx, text)
	return args.Get(0).(moderation.Verdict)
}

// MockNotifier records flagged-submission alerts.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) GrievanceFlagged(grievance *models.Grievance, reason string) {
	m.Called(grievance, reason)
}
