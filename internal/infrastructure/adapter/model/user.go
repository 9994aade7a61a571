package model

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// User is the read-only view of the account table
type User struct {
	ID          uint64    `gorm:"primaryKey"`
	Firstname   string    `gorm:"size:100"`
	Lastname    string    `gorm:"size:100"`
	Email       string    `gorm:"size:255"`
	NocTransfer string    `gorm:"size:100"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// ToEntity converts the row to a domain user
func (u *User) ToEntity() *entity.User {
	return &entity.User{
		ID:          u.ID,
		Firstname:   u.Firstname,
		Lastname:    u.Lastname,
		Email:       u.Email,
		NocTransfer: u.NocTransfer,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
