package service

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Header pembawa token sesi pegawai (bukan JWT; token opak yang di-resolve
// ke Redis).
const sessionTokenHeader = "X-Session-Token"

// SipebaruService menangani pendaftaran, login, dan sesi pegawai SIPebaru.
// Ruang identitas ini terpisah total dari akun panel admin.
type SipebaruService interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
	Logout(ctx *gin.Context)
}

type sipebaruService struct {
	sipebaruRepo repository.SipebaruRepository
	sessionRepo  repository.SessionRepository
}

func NewSipebaruService(
	sipebaruRepo repository.SipebaruRepository,
	sessionRepo repository.SessionRepository,
) SipebaruService {
	return &sipebaruService{
		sipebaruRepo: sipebaruRepo,
		sessionRepo:  sessionRepo,
	}
}

// newSessionToken membuat token sesi opak 64 hex char dari crypto/rand.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Register mendaftarkan pegawai baru ber-status pending.
// Minimal salah satu dari RFID / email harus diisi.
func (s *sipebaruService) Register(ctx *gin.Context) {
	var input struct {
		Nama      string `json:"nama" binding:"required"`
		NPK       string `json:"npk" binding:"required"`
		UnitKerja string `json:"unitKerja" binding:"required"`
		RFID      string `json:"rfid"`
		Email     string `json:"email" binding:"omitempty,email"`
		Password  string `json:"password" binding:"required,min=8"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	rfid := strings.TrimSpace(input.RFID)
	email := strings.TrimSpace(input.Email)
	if rfid == "" && email == "" {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", "isi minimal salah satu: RFID atau email", nil))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mendaftarkan pegawai", "hash_error", nil))
		return
	}

	user := model.SipebaruUser{
		Nama:         input.Nama,
		NPK:          input.NPK,
		UnitKerja:    input.UnitKerja,
		PasswordHash: string(hash),
		Status:       model.AccountPending, // selalu pending, menunggu admin_utama
	}
	if rfid != "" {
		user.RFID = &rfid
	}
	if email != "" {
		user.Email = &email
	}

	if err := s.sipebaruRepo.Create(&user); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mendaftarkan pegawai", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Pendaftaran berhasil, menunggu persetujuan admin", map[string]interface{}{
			"fid":    user.FID,
			"status": user.Status,
		}))
}

// Login memverifikasi RFID/email + password. Pesan error terstruktur dan
// ditampilkan apa adanya oleh frontend:
// - kredensial salah        -> "Kredensial tidak valid"
// - akun masih pending      -> "Akun menunggu persetujuan"
// - akun ditolak            -> "Akun ditolak"
func (s *sipebaruService) Login(ctx *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"` // RFID atau email
		Password   string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input login tidak valid", err.Error(), nil))
		return
	}

	user, err := s.sipebaruRepo.FindByIdentifier(strings.TrimSpace(input.Identifier))
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Login gagal", "Kredensial tidak valid", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Login gagal", "Kredensial tidak valid", nil))
		return
	}

	switch user.Status {
	case model.AccountPending:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Login gagal", "Akun menunggu persetujuan", nil))
		return
	case model.AccountRejected:
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Login gagal", "Akun ditolak", nil))
		return
	}

	token, err := newSessionToken()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat sesi", err.Error(), nil))
		return
	}

	session := repository.SipebaruSession{
		FID:       user.FID,
		Nama:      user.Nama,
		NPK:       user.NPK,
		UnitKerja: user.UnitKerja,
		LoginAt:   time.Now(),
	}
	if err := s.sessionRepo.Save(ctx.Request.Context(), token, &session); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan sesi", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Login berhasil", map[string]interface{}{
			"sessionToken": token,
			"user": map[string]interface{}{
				"fid":       user.FID,
				"nama":      user.Nama,
				"npk":       user.NPK,
				"unitKerja": user.UnitKerja,
			},
		}))
}

// Me meng-hydrate sesi dari token (dipanggil dashboard pegawai saat mount).
func (s *sipebaruService) Me(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.GetHeader(sessionTokenHeader))
	if token == "" {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Sesi tidak ditemukan", "missing_session_token", nil))
		return
	}

	session, err := s.sessionRepo.Find(ctx.Request.Context(), token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized,
			utils.BuildResponseFailed("Sesi tidak ditemukan", "invalid_or_expired_session", nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Sesi aktif", session))
}

// Logout menghapus sesi di server. Token yang sudah tidak dikenal tetap
// dibalas sukses (idempotent).
func (s *sipebaruService) Logout(ctx *gin.Context) {
	token := strings.TrimSpace(ctx.GetHeader(sessionTokenHeader))
	if token != "" {
		_ = s.sessionRepo.Delete(ctx.Request.Context(), token)
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Logout berhasil", nil))
}
