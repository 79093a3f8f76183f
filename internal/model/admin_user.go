package model

import "time"

// AdminUser is a back-office account. Only the bcrypt hash of the
// password is stored.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique login email.
//	PasswordHash – bcrypt hashed password.
//	Name         – display name.
//	Role         – admin role label (e.g. "admin").
//	CreatedAt    – timestamp of creation.
type AdminUser struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
