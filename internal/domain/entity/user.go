package entity

import "time"

// Usuario secundario fijo que se crea junto al administrador.
const (
	TestUserEmail     = "user@example.com"
	TestUserFirstName = "Test"
	TestUserLastName  = "User"
)

// User representa una identidad que puede iniciar sesión en blockvisor-api.
type User struct {
	ID          string
	Email       string
	Hashword    string // hash Argon2id en base64 sin padding
	Salt        string // salt en base64 sin padding
	FirstName   string
	LastName    string
	CreatedAt   time.Time
	ConfirmedAt time.Time
}
