package doctor

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name         string `gorm:"column:name;type:varchar(255);not null"`
	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`

	Specialization string `gorm:"column:specialization;type:varchar(100);index"`
	Degree         string `gorm:"column:degree;type:varchar(100)"`
	City           string `gorm:"column:city;type:varchar(100);index"`
	Contact        string `gorm:"column:contact;type:varchar(50)"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type SignupCommand struct {
	Name           string
	Email          string
	Password       string
	Specialization string
	Degree         string
	City           string
	Contact        string
}

// SearchQuery filters are case-insensitive substring matches, AND-combined
// across the filters that are supplied.
type SearchQuery struct {
	City           string
	Specialization string
	Degree         string
}
