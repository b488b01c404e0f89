package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
// Users are hard-deleted, so there is no soft-delete column.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100);not null"`
	PhoneNumber    *string   `gorm:"type:varchar(50)"`
	Address        *string   `gorm:"type:text"`
	DateOfBirth    *time.Time
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	HasBankAccount bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
