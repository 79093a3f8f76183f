// Package utils provides helpers for admin token issuing and password
// hashing. Tokens are HS256 JWTs carrying the admin id as subject.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminToken is a signed admin access token and its expiry.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for a back-office account.
// Claims: subject (sub) = admin id, email, role, exp and iat.
func NewAdminToken(secret string, adminID uint64, email, role string, ttlHours int) (AdminToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":   adminID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
