package entity

import "time"

// User is the account owner. The ledger only reads it.
type User struct {
	ID          uint64    `json:"user_id"`
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Email       string    `json:"email"`
	NocTransfer string    `json:"noc_transfer"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
