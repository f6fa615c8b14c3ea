package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/delivery-accounts/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "delivery-accounts-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, "owner", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	accountID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testAccountID, accountID)
	assert.Equal(t, "owner", role)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testAccountID, "client", testIssuer, 60)
	assert.Error(t, err)
}

func TestGenerate_SubjectVacio(t *testing.T) {
	_, err := pkgjwt.Generate(testSecret, "", "client", testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, "client", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testAccountID, "client", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_Basura(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
