package models

import "strings"

// User is the account held by the auth container and persisted under
// the "user" storage key.
type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegisterInput is the payload sent to the user service on sign-up.
type RegisterInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// LoginInput is matched client-side against the listed users.
type LoginInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// Matches reports whether u satisfies the login input: full name compared
// case-insensitively, phone compared exactly.
func (u User) Matches(in LoginInput) bool {
	return strings.EqualFold(strings.TrimSpace(u.Name), strings.TrimSpace(in.Name)) &&
		u.Phone == in.Phone
}
