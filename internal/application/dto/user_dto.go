package dto

import "time"

// UserShortResponse listado reducido de usuarios (id, username, nombre completo).
type UserShortResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// CreateUserRequest cuenta a crear junto a la persona.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // nombre de rol existente
}

// CreatePersonRequest entrada para crear una persona con su usuario asociado.
type CreatePersonRequest struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	DNI       string            `json:"dni"`
	BirthDate *time.Time        `json:"birth_date"`
	Gender    string            `json:"gender"`
	Address   string            `json:"address"`
	Phone     string            `json:"phone"`
	User      CreateUserRequest `json:"user"`
}

// UpdatePersonRequest entrada para actualizar datos de una persona.
type UpdatePersonRequest struct {
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    *string    `json:"gender"`
	Address   *string    `json:"address"`
	Phone     *string    `json:"phone"`
}

// PersonResponse salida de una persona con los datos básicos de su usuario.
type PersonResponse struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	DNI       string     `json:"dni"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    string     `json:"gender"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
}
