package entity

import "time"

// User cuenta del sistema. Tiene exactamente un rol.
type User struct {
	ID           string
	Username     string // único
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Active       bool
	RoleID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
