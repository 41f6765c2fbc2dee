package hospital

import (
	"time"

	"github.com/google/uuid"
)

// Status is the onboarding lifecycle of a hospital account. Self-registered
// hospitals start pending and become active once an admin approves the
// onboarding ticket; admin-created hospitals are active immediately.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusBlocked:
		return true
	}
	return false
}

type Hospital struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name         string `gorm:"column:name;type:varchar(255);not null"`
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`

	City   string `gorm:"column:city;type:varchar(100);not null"`
	Status Status `gorm:"column:status;type:varchar(20);not null;default:'pending';index"`

	// TokenVersion backs the tv claim; bumping it invalidates tokens issued
	// with an older version where the caller opts in to checking it.
	TokenVersion int `gorm:"column:token_version;default:0"`
}

func (Hospital) TableName() string {
	return "ops.hospitals"
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	City     string
}
