package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el perfil de la persona autenticada (si existe).
type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"` // siempre "Bearer"
	Person    *PersonResponse `json:"person,omitempty"`
}
