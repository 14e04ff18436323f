package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"grievgo/backend/internal/config"
)

// User roles. Students file grievances, staff triage them,
// admins additionally see the aggregated stats.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User represents a portal account.
// The credential is stored as a bcrypt hash and is never serialized.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Password   string    `gorm:"not null" json:"-"`
	Email      string    `gorm:"not null" json:"email"`
	Role       string    `gorm:"type:text;not null;default:student" json:"role"`
	Department *string   `json:"department"` // staff/admin only
	FullName   string    `gorm:"not null" json:"fullName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SetPassword hashes the plain credential and stores the hash.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), config.BcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plain credential against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
