package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/sairmh/libreria-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "libreria-api-test"
	testExpMin = 60
)

var testAuthorities = []string{"ROLE_VENDEDOR", "CREATE_SALE", "GET_SALES"}

func TestGenerateAndParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sair", "VENDEDOR", testAuthorities, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "sair", claims.Subject)
	assert.Equal(t, "VENDEDOR", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.ElementsMatch(t, testAuthorities, claims.Authorities)
}

func TestHasAuthority(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sair", "VENDEDOR", testAuthorities, testIssuer, testExpMin)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.True(t, claims.HasAuthority("CREATE_SALE"))
	assert.True(t, claims.HasAuthority("ROLE_VENDEDOR"))
	assert.False(t, claims.HasAuthority("DELETE_PRODUCT"))
}

func TestParse_TokenExpirado(t *testing.T) {
	// Expiración -1 minuto: el token ya venció al generarse.
	tok, err := pkgjwt.Generate(testSecret, "sair", "VENDEDOR", testAuthorities, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenExpired,
		"un token vencido debe distinguirse de uno inválido")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sair", "VENDEDOR", testAuthorities, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.ErrorIs(t, err, pkgjwt.ErrTokenInvalid)
}

func TestGenerate_SecretVacioRechazado(t *testing.T) {
	_, err := pkgjwt.Generate("", "sair", "VENDEDOR", nil, testIssuer, testExpMin)
	assert.Error(t, err)
}

func TestGetUsername(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sair", "VENDEDOR", testAuthorities, testIssuer, testExpMin)
	require.NoError(t, err)

	username, err := pkgjwt.GetUsername(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "sair", username)
}
