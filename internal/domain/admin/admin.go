package admin

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole ranks admin users within the admin portal. It is distinct from
// domain.Role: every AdminUser authenticates with the admin actor kind.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleSupport    AdminRole = "support"
)

func (r AdminRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSupport:
		return true
	}
	return false
}

type AdminUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name         string `gorm:"column:name;type:varchar(255)"`

	Role     AdminRole `gorm:"column:role;type:varchar(30);not null;default:'super_admin'"`
	IsActive bool      `gorm:"column:is_active;default:true;index"`
}

func (AdminUser) TableName() string {
	return "auth.admin_users"
}
