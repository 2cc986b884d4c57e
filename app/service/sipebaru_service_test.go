package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubSessionRepo struct {
	saved   map[string]*repository.SipebaruSession
	deleted []string
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{saved: make(map[string]*repository.SipebaruSession)}
}

func (f *stubSessionRepo) Save(ctx context.Context, token string, s *repository.SipebaruSession) error {
	f.saved[token] = s
	return nil
}

func (f *stubSessionRepo) Find(ctx context.Context, token string) (*repository.SipebaruSession, error) {
	s, ok := f.saved[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return s, nil
}

func (f *stubSessionRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	delete(f.saved, token)
	return nil
}

func sipebaruUser(t *testing.T, status string) *model.SipebaruUser {
	t.Helper()
	rfid := "RF-001"
	return &model.SipebaruUser{
		FID:          7,
		Nama:         "Siti",
		NPK:          "880123",
		UnitKerja:    "Gudang",
		RFID:         &rfid,
		PasswordHash: hashFor(t, "rahasia123"),
		Status:       status,
	}
}

func TestSipebaruRegisterRequiresRFIDOrEmail(t *testing.T) {
	repo := &stubSipebaruRepo{}
	svc := NewSipebaruService(repo, newStubSessionRepo())

	body := strings.NewReader(`{
		"nama": "Siti",
		"npk": "880123",
		"unitKerja": "Gudang",
		"password": "rahasia123"
	}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.created)
}

func TestSipebaruRegisterCreatesPending(t *testing.T) {
	repo := &stubSipebaruRepo{}
	svc := NewSipebaruService(repo, newStubSessionRepo())

	body := strings.NewReader(`{
		"nama": "Siti",
		"npk": "880123",
		"unitKerja": "Gudang",
		"rfid": "RF-001",
		"password": "rahasia123"
	}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, model.AccountPending, repo.created.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.created.PasswordHash), []byte("rahasia123")))
}

// Pesan error login terstruktur dan ditampilkan frontend apa adanya.
func TestSipebaruLoginStatusErrors(t *testing.T) {
	cases := []struct {
		status  string
		code    int
		message string
	}{
		{model.AccountPending, http.StatusForbidden, "Akun menunggu persetujuan"},
		{model.AccountRejected, http.StatusForbidden, "Akun ditolak"},
	}

	for _, tc := range cases {
		repo := &stubSipebaruRepo{byIdentifier: sipebaruUser(t, tc.status)}
		svc := NewSipebaruService(repo, newStubSessionRepo())

		body := strings.NewReader(`{"identifier":"RF-001","password":"rahasia123"}`)
		c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

		svc.Login(c)

		assert.Equal(t, tc.code, w.Code, "status=%s", tc.status)
		assert.Contains(t, w.Body.String(), tc.message)
	}
}

func TestSipebaruLoginInvalidCredentials(t *testing.T) {
	// user tidak ditemukan
	svc := NewSipebaruService(&stubSipebaruRepo{}, newStubSessionRepo())
	body := strings.NewReader(`{"identifier":"RF-404","password":"rahasia123"}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Kredensial tidak valid")

	// password salah: pesan yang sama (tidak bocor mana yang keliru)
	svc = NewSipebaruService(&stubSipebaruRepo{byIdentifier: sipebaruUser(t, model.AccountActive)}, newStubSessionRepo())
	body = strings.NewReader(`{"identifier":"RF-001","password":"salah"}`)
	c, w = testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Kredensial tidak valid")
}

// Setelah disetujui admin_utama, login dengan kredensial yang sama berhasil
// dan sesi tertulis ke store.
func TestSipebaruLoginActiveCreatesSession(t *testing.T) {
	sessions := newStubSessionRepo()
	svc := NewSipebaruService(&stubSipebaruRepo{byIdentifier: sipebaruUser(t, model.AccountActive)}, sessions)

	body := strings.NewReader(`{"identifier":"RF-001","password":"rahasia123"}`)
	c, w := testContext(t, http.MethodPost, "/", body, "", uuid.Nil)

	svc.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sessionToken")
	require.Len(t, sessions.saved, 1)
	for _, s := range sessions.saved {
		assert.Equal(t, uint(7), s.FID)
		assert.Equal(t, "Siti", s.Nama)
	}
}

func TestSipebaruMeAndLogout(t *testing.T) {
	sessions := newStubSessionRepo()
	sessions.saved["token-abc"] = &repository.SipebaruSession{FID: 7, Nama: "Siti"}
	svc := NewSipebaruService(&stubSipebaruRepo{}, sessions)

	// hydrate
	c, w := testContext(t, http.MethodGet, "/", nil, "", uuid.Nil)
	c.Request.Header.Set("X-Session-Token", "token-abc")

	svc.Me(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Siti")

	// clear
	c, w = testContext(t, http.MethodPost, "/", nil, "", uuid.Nil)
	c.Request.Header.Set("X-Session-Token", "token-abc")

	svc.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sessions.saved)

	// token yang sudah dihapus -> 401 saat hydrate
	c, w = testContext(t, http.MethodGet, "/", nil, "", uuid.Nil)
	c.Request.Header.Set("X-Session-Token", "token-abc")

	svc.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
