package models

import (
	"time"
)

// User represents a registered account. The stored value in SenhaHash is a
// bcrypt hash; it is never serialized.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Nome      string    `json:"name" db:"nome"`
	Email     string    `json:"email" db:"email"`
	SenhaHash string    `json:"-" db:"senha_hash"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the name shown to clients, falling back to a neutral
// label when the account was created without one.
func (u *User) DisplayName() string {
	if u.Nome != "" {
		return u.Nome
	}
	return "Usuário"
}

// Public is the projection of a user returned by the API.
type Public struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the API projection of the user.
func (u *User) Public() Public {
	return Public{
		ID:    u.ID,
		Name:  u.DisplayName(),
		Email: u.Email,
	}
}
