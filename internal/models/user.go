package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// User is a read-only snapshot of an account held by the upstream store.
// The gateway never creates or mutates users.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Caller returns the acting user described by the claims.
func (c *JwtCustomClaims) Caller() User {
	return User{
		ID:       c.UserID,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}
}
