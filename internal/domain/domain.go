package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of actor kinds that can hold a session token.
// Every protected operation scopes itself by Role instead of comparing
// free-text strings in handlers.
type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleHospital, RoleAdmin:
		return true
	}
	return false
}

// Actor is the resolved identity behind a verified token: the concrete
// row in the collection implied by the role claim. Handlers receive it
// from the auth middleware and never re-derive the kind themselves.
type Actor struct {
	Role  Role
	ID    uuid.UUID
	Email string
}

func (a Actor) IsAdmin() bool    { return a.Role == RoleAdmin }
func (a Actor) IsHospital() bool { return a.Role == RoleHospital }

// TokenClaims is the claim set embedded in every signed token.
type TokenClaims struct {
	Email        string
	Role         Role
	ActorID      uuid.UUID
	TokenVersion int
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
	ActionSignup AuditAction = "signup"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	ActorID   uuid.UUID `gorm:"column:actor_id;type:uuid;not null;index"`
	ActorRole Role      `gorm:"column:actor_role;type:varchar(30);not null"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID string `gorm:"column:request_id;type:varchar(50);index"`
	Changes   string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}
