package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/proveedores-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "proveedores-api-test"
)

func TestJWT_IssueAndParse_ConClaimsYRoles(t *testing.T) {
	custom := map[string]string{"ExcluirFornecedor": "true"}
	roles := []string{"admin"}

	tok, exp, err := pkgjwt.Issue(testSecret, testIssuer, "alice@x.com", custom, roles, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "alice@x.com", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID, "cada token debe llevar un jti único")

	v, ok := claims.Claim("ExcluirFornecedor")
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("vendedor"))
}

func TestJWT_JtiUnicoPorToken(t *testing.T) {
	tok1, _, err := pkgjwt.Issue(testSecret, testIssuer, "a@x.com", nil, nil, time.Hour)
	require.NoError(t, err)
	tok2, _, err := pkgjwt.Issue(testSecret, testIssuer, "a@x.com", nil, nil, time.Hour)
	require.NoError(t, err)

	c1, err := pkgjwt.Parse(testSecret, tok1)
	require.NoError(t, err)
	c2, err := pkgjwt.Parse(testSecret, tok2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Issue(testSecret, testIssuer, "alice@x.com", nil, nil, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Issue(testSecret, testIssuer, "alice@x.com", nil, nil, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, _, err := pkgjwt.Issue("", testIssuer, "alice@x.com", nil, nil, time.Hour)
	assert.Error(t, err, "sin secret no se puede emitir")
}
