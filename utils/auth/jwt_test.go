package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: expiry, Issuer: "institucion-api"})
}

func TestGenerateAndValidate(t *testing.T) {
	m := newManager(time.Hour)

	token, jti, err := m.GenerateAccessToken("admin@instituto.edu.ec", RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@instituto.edu.ec", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, jti, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	m := newManager(-time.Minute)

	token, _, err := m.GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newManager(time.Hour).GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "other", Expiry: time.Hour, Issuer: "institucion-api"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	token, _, err := newManager(time.Hour).GenerateAccessToken("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "someone-else"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
