package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sairmh/libreria-api/internal/application/dto"
	"github.com/sairmh/libreria-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUsername    = "username"
	LocalRole        = "role"
	LocalAuthorities = "authorities"
)

// unauthorized responde 401 con el cuerpo estructurado de autenticación.
func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.AuthErrorResponse{
		Timestamp: time.Now(),
		Status:    fiber.StatusUnauthorized,
		Error:     message,
		Path:      c.Path(),
	})
}

// AuthMiddleware valida el Bearer Token JWT y deja username, rol y authorities
// en c.Locals. Distingue token expirado de token inválido en el cuerpo del 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return unauthorized(c, "token expirado")
			}
			return unauthorized(c, "token inválido")
		}
		c.Locals(LocalUsername, claims.Subject)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalAuthorities, claims.Authorities)
		return c.Next()
	}
}

// RequirePermission exige que el token porte el authority dado. Corre después
// de AuthMiddleware; sin el permiso responde 403.
func RequirePermission(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, a := range GetAuthorities(c) {
			if a == name {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "permiso insuficiente: " + name,
		})
	}
}

// GetUsername devuelve el username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetAuthorities devuelve el conjunto de autoridad del contexto.
func GetAuthorities(c *fiber.Ctx) []string {
	v := c.Locals(LocalAuthorities)
	if v == nil {
		return nil
	}
	s, _ := v.([]string)
	return s
}
