package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/vitasport-core/pkg/jwt"
)

const (
	testSecret = "secreto-de-test"
	testIssuer = "vitasport-test"
)

func TestGenerateAndParseRoundtrip(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 42, "maria", "Vendedor", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, username, role, err := pkgjwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "Vendedor", role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 1, "admin", "Administrador", testIssuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := pkgjwt.Generate(testSecret, 1, "admin", "Administrador", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testSecret, token)
	assert.Error(t, err, "un token vencido no debe validar")
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(testSecret, "ni.siquiera.jwt")
	assert.Error(t, err)
}
