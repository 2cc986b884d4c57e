package service

import (
	"testing"

	"sipebaru-backend/app/model"
	"sipebaru-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubProfileRepo{
		byIdentifier: &model.AdminProfile{
			UserID:       uuid.New(),
			Username:     "budi",
			PasswordHash: hashFor(t, "rahasia123"),
			Status:       model.AccountActive,
		},
		roles: []string{utils.RoleAdmin, utils.RoleViewer},
	}
	svc := NewAuthService(repo)

	profile, roles, err := svc.Login("budi", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "budi", profile.Username)
	assert.Equal(t, []string{utils.RoleAdmin, utils.RoleViewer}, roles)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubProfileRepo{
		byIdentifier: &model.AdminProfile{
			PasswordHash: hashFor(t, "rahasia123"),
			Status:       model.AccountActive,
		},
		roles: []string{utils.RoleAdmin},
	}
	svc := NewAuthService(repo)

	_, _, err := svc.Login("budi", "salah")
	assert.Error(t, err)
}

// Profil pending/rejected mendapat pesan generik yang sama dan tidak pernah
// setengah-login.
func TestLoginNonActiveProfileRejected(t *testing.T) {
	for _, status := range []string{model.AccountPending, model.AccountRejected} {
		repo := &stubProfileRepo{
			byIdentifier: &model.AdminProfile{
				PasswordHash: hashFor(t, "rahasia123"),
				Status:       status,
			},
			roles: []string{utils.RoleAdmin},
		}
		svc := NewAuthService(repo)

		_, _, err := svc.Login("budi", "rahasia123")
		assert.ErrorIs(t, err, ErrNoAdminAccess, "status=%s", status)
	}
}

func TestLoginActiveWithoutRoles(t *testing.T) {
	repo := &stubProfileRepo{
		byIdentifier: &model.AdminProfile{
			PasswordHash: hashFor(t, "rahasia123"),
			Status:       model.AccountActive,
		},
		roles: nil,
	}
	svc := NewAuthService(repo)

	_, _, err := svc.Login("budi", "rahasia123")
	assert.ErrorIs(t, err, ErrNoAdminAccess)
}

func TestSignupCreatesPendingAdmin(t *testing.T) {
	repo := &stubProfileRepo{}
	svc := NewAuthService(repo)

	profile, err := svc.Signup("budi_01", "budi@contoh.id", "rahasia123")
	require.NoError(t, err)

	assert.Equal(t, model.AccountPending, profile.Status)
	assert.Equal(t, utils.RoleAdmin, repo.createdRole)
	require.NotNil(t, repo.created)

	// password tersimpan sebagai hash, bukan teks asli
	assert.NotEqual(t, "rahasia123", repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.created.PasswordHash), []byte("rahasia123")))
}

func TestSignupValidation(t *testing.T) {
	svc := NewAuthService(&stubProfileRepo{})

	cases := []struct {
		username, password string
	}{
		{"ab", "rahasia123"},      // username terlalu pendek
		{"budi 01", "rahasia123"}, // spasi tidak diizinkan
		{"budi_01", "pendek1"},    // password < 8
		{"budi_01", "tanpadigit"}, // tanpa angka
		{"budi_01", "12345678"},   // tanpa huruf
	}

	for _, tc := range cases {
		_, err := svc.Signup(tc.username, "budi@contoh.id", tc.password)
		assert.Error(t, err, "username=%q password=%q", tc.username, tc.password)
	}
}

func TestSetupFirstAdmin(t *testing.T) {
	repo := &stubProfileRepo{count: 0}
	svc := NewAuthService(repo)

	profile, err := svc.SetupFirstAdmin("kepala_ga", "kepala@contoh.id", "rahasia123")
	require.NoError(t, err)

	assert.Equal(t, model.AccountActive, profile.Status)
	assert.Equal(t, utils.RoleAdminUtama, repo.createdRole)
}

func TestSetupFirstAdminBlockedWhenProfilesExist(t *testing.T) {
	repo := &stubProfileRepo{count: 3}
	svc := NewAuthService(repo)

	_, err := svc.SetupFirstAdmin("kepala_ga", "kepala@contoh.id", "rahasia123")
	assert.Error(t, err)
	assert.Nil(t, repo.created)
}
