package account

import "time"

// Role identifiers match the seeded roles table.
const (
	RoleIDAdmin = 1
	RoleIDUser  = 2
)

type Role struct {
	ID   int
	Name string
}

type Account struct {
	ID           int
	Username     string
	PasswordHash string
	EmployeeID   *int
	RoleID       int
	RoleName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateAccountInput struct {
	Username     string
	PasswordHash string
	EmployeeID   int
	RoleID       int
}

// UpdateAccountInput carries only the fields the caller wants to change.
// PasswordHash and RoleID stay untouched when nil.
type UpdateAccountInput struct {
	Username     string
	PasswordHash *string
	RoleID       *int
}
