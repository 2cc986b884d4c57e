package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-unit-test")

	userID := uuid.New()
	roles := []string{RoleAdmin, RoleViewer}

	token, err := GenerateToken(userID, "budi", RoleAdmin, roles)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "budi", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, roles, claims.Roles)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-unit-test")

	token, err := GenerateToken(uuid.New(), "budi", RoleAdmin, []string{RoleAdmin})
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-pertama")
	token, err := GenerateToken(uuid.New(), "budi", RoleAdmin, []string{RoleAdmin})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rahasia-kedua")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken(uuid.New(), "budi", RoleAdmin, nil)
	assert.Error(t, err)
}
