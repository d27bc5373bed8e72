package domain

import "time"

// Role scopes what an authenticated operator may do.
type Role string

const (
	RoleAdmin Role = "ADMIN"
)

// Operator is the authenticated caller behind a bearer token.
type Operator struct {
	Email string
	Role  Role
}

// Token is issued on successful login.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
