package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/meridianbay/hotel-booking/internal/model"
)

// AdminUserRepo provides read access to back-office accounts. Accounts
// are provisioned out of band; this service only authenticates them.
type AdminUserRepo struct {
	db *sql.DB
}

// NewAdminUserRepo returns a new AdminUserRepo bound to the given database.
func NewAdminUserRepo(db *sql.DB) *AdminUserRepo { return &AdminUserRepo{db: db} }

// GetByEmail returns the admin account with the given email. Lookups are
// case-insensitive on the email. sql.ErrNoRows is passed through when no
// account matches; the login handler maps it to invalid credentials.
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	const q = `SELECT id, email, password_hash, name, role, created_at
		FROM admin_users WHERE email = ?`
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
