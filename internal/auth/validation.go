package auth

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= 100
}

// ValidateNome checks the display name: required, at most 100 characters.
func ValidateNome(nome string) bool {
	nome = strings.TrimSpace(nome)
	return nome != "" && len(nome) <= 100
}

// ValidatePassword checks if a password is acceptable. bcrypt truncates
// input beyond 72 bytes, hence the upper bound.
func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 72
}
