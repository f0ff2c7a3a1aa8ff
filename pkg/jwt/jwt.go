package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Fallos distinguibles al validar un token: expirado (fue válido y venció) e
// inválido (firma incorrecta, malformado o claims inconsistentes). No hay
// lista de revocación; la expiración es la única transición terminal.
var (
	ErrTokenExpired = errors.New("jwt: token expirado")
	ErrTokenInvalid = errors.New("jwt: token inválido")
)

// Claims claims estándar JWT más los campos propios de la aplicación.
// Authorities es el conjunto efectivo de autoridad del usuario:
// "ROLE_<rol>" más el nombre de cada permiso del rol.
type Claims struct {
	jwt.RegisteredClaims
	Role        string   `json:"role"`
	Authorities []string `json:"authorities"`
}

// HasAuthority indica si el token porta el authority dado.
func (c *Claims) HasAuthority(name string) bool {
	for _, a := range c.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

// Generate genera un token HS256 firmado con subject=username, el rol y el
// conjunto de autoridad, con expiración fija.
func Generate(secret, username, role string, authorities []string, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role:        role,
		Authorities: authorities,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
// Retorna ErrTokenExpired o ErrTokenInvalid según el tipo de fallo.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrTokenInvalid
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetUsername extrae el subject del token tras validarlo.
func GetUsername(secret, tokenString string) (string, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
