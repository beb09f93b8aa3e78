package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("demo1234")
	require.NoError(t, err)
	assert.NotEqual(t, "demo1234", hash)

	assert.True(t, CheckPasswordHash("demo1234", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "spv1@demo.com", "SPV Manager 1", []string{"spv"})
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "spv1@demo.com", claims.Email)
	assert.Equal(t, []string{"spv"}, claims.Roles)
	assert.Equal(t, "cpf-platform", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
