package service

import (
	"net/http"
	"strconv"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountService mengelola approval dua jenis akun yang independen:
// profil admin panel dan akun pegawai SIPebaru.
type AccountService interface {
	GetAllAccounts(ctx *gin.Context)

	CreateAdmin(ctx *gin.Context)
	ApproveAdminProfile(ctx *gin.Context)
	RejectAdminProfile(ctx *gin.Context)
	DeleteAdminProfile(ctx *gin.Context)
	UpdateAdminPassword(ctx *gin.Context)

	ApproveSipebaruUser(ctx *gin.Context)
	RejectSipebaruUser(ctx *gin.Context)
}

type accountService struct {
	profileRepo  repository.ProfileRepository
	sipebaruRepo repository.SipebaruRepository
}

func NewAccountService(
	profileRepo repository.ProfileRepository,
	sipebaruRepo repository.SipebaruRepository,
) AccountService {
	return &accountService{
		profileRepo:  profileRepo,
		sipebaruRepo: sipebaruRepo,
	}
}

// helper: approval/penghapusan akun khusus admin_utama (super_admin setara).
func ensureAdminUtama(ctx *gin.Context) bool {
	roleI, _ := ctx.Get("role")
	if role, _ := roleI.(string); !utils.IsAdminUtama(role) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Hanya admin utama yang dapat mengelola akun", "forbidden", nil))
		return false
	}
	return true
}

// helper: fitur yang cukup butuh role admin (membuat admin baru, reset password).
func ensureAdmin(ctx *gin.Context) bool {
	roleI, _ := ctx.Get("role")
	role, _ := roleI.(string)
	if role == utils.RoleAdmin || utils.IsAdminUtama(role) {
		return true
	}
	ctx.JSON(http.StatusForbidden,
		utils.BuildResponseFailed("Hanya admin yang dapat mengakses fitur ini", "forbidden", nil))
	return false
}

func currentUserID(ctx *gin.Context) uuid.UUID {
	idI, _ := ctx.Get("userID")
	id, _ := idI.(uuid.UUID)
	return id
}

// GetAllAccounts mengembalikan kedua jenis akun berikut statusnya.
func (s *accountService) GetAllAccounts(ctx *gin.Context) {
	profiles, err := s.profileRepo.FindAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil akun admin", err.Error(), nil))
		return
	}

	sipebaruUsers, err := s.sipebaruRepo.FindAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil akun pegawai", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Berhasil mengambil daftar akun", map[string]interface{}{
			"adminProfiles": profiles,
			"sipebaruUsers": sipebaruUsers,
		}))
}

// CreateAdmin: admin membuat akun admin lain. Berbeda dari signup publik,
// profil langsung active (dibuat oleh orang dalam).
func (s *accountService) CreateAdmin(ctx *gin.Context) {
	if !ensureAdmin(ctx) {
		return
	}

	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat akun admin", "hash_error", nil))
		return
	}

	profile := model.AdminProfile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Status:       model.AccountActive,
	}

	// Identitas + profil + role dalam satu transaksi.
	if err := s.profileRepo.CreateWithRole(&profile, utils.RoleAdmin); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat akun admin", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Akun admin berhasil dibuat", profile))
}

// transitionAdminProfile: inti state machine approval profil admin.
// Transisi dicek terhadap status aktual (active/rejected terminal), lalu
// update optimistik satu baris; 0 baris berarti profil keburu dihapus atau
// keburu diproses admin lain — dilaporkan not-found, bukan sukses diam-diam.
func (s *accountService) transitionAdminProfile(ctx *gin.Context, to string) {
	if !ensureAdminUtama(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun tidak ditemukan", "not_found", nil))
		return
	}

	if !model.CanTransition(profile.Status, to) {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Transisi status tidak diizinkan", profile.Status+" -> "+to, nil))
		return
	}

	rows, err := s.profileRepo.UpdateStatus(id, to)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui status akun", err.Error(), nil))
		return
	}
	if rows == 0 {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun tidak ditemukan atau sudah diproses", "not_found", nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Status akun berhasil diperbarui", map[string]string{"status": to}))
}

func (s *accountService) ApproveAdminProfile(ctx *gin.Context) {
	s.transitionAdminProfile(ctx, model.AccountActive)
}

func (s *accountService) RejectAdminProfile(ctx *gin.Context) {
	s.transitionAdminProfile(ctx, model.AccountRejected)
}

// DeleteAdminProfile: admin_utama menghapus akun admin. Menghapus akun
// sendiri diblokir SEBELUM menyentuh store.
func (s *accountService) DeleteAdminProfile(ctx *gin.Context) {
	if !ensureAdminUtama(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun tidak ditemukan", err.Error(), nil))
		return
	}

	// Guard hapus-diri-sendiri.
	if profile.UserID == currentUserID(ctx) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Tidak dapat menghapus akun sendiri", "self_delete_blocked", nil))
		return
	}

	rows, err := s.profileRepo.Delete(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus akun", err.Error(), nil))
		return
	}
	if rows == 0 {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun tidak ditemukan", "not_found", nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Akun berhasil dihapus", nil))
}

// UpdateAdminPassword: admin mengganti password admin lain berdasarkan
// user_id. Detail kegagalan internal TIDAK diteruskan ke pemanggil.
func (s *accountService) UpdateAdminPassword(ctx *gin.Context) {
	if !ensureAdmin(ctx) {
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	var input struct {
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui password", nil, nil))
		return
	}

	rows, err := s.profileRepo.UpdatePassword(userID, string(hash))
	if err != nil || rows == 0 {
		// pesan generik yang sama untuk semua kegagalan
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui password", nil, nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Password berhasil diperbarui", nil))
}

// transitionSipebaruUser: state machine yang sama untuk akun pegawai.
func (s *accountService) transitionSipebaruUser(ctx *gin.Context, to string) {
	if !ensureAdminUtama(ctx) {
		return
	}

	fid, err := strconv.ParseUint(ctx.Param("fid"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format FID salah (harus angka)", err.Error(), nil))
		return
	}

	user, err := s.sipebaruRepo.FindByFID(uint(fid))
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun pegawai tidak ditemukan", "not_found", nil))
		return
	}

	if !model.CanTransition(user.Status, to) {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Transisi status tidak diizinkan", user.Status+" -> "+to, nil))
		return
	}

	rows, err := s.sipebaruRepo.UpdateStatus(uint(fid), to)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui status akun pegawai", err.Error(), nil))
		return
	}
	if rows == 0 {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Akun pegawai tidak ditemukan atau sudah diproses", "not_found", nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Status akun pegawai berhasil diperbarui", map[string]string{"status": to}))
}

func (s *accountService) ApproveSipebaruUser(ctx *gin.Context) {
	s.transitionSipebaruUser(ctx, model.AccountActive)
}

func (s *accountService) RejectSipebaruUser(ctx *gin.Context) {
	s.transitionSipebaruUser(ctx, model.AccountRejected)
}
