package service

import (
	"errors"
	"regexp"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoAdminAccess: satu pesan generik untuk profil pending/rejected/tanpa
// role, supaya status approval tidak bocor lewat pesan login.
var ErrNoAdminAccess = errors.New("akun tidak memiliki akses admin")

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	hasLetter  = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
)

// Interface AuthService mendefinisikan alur autentikasi panel admin.
type AuthService interface {
	// Signup mendaftarkan admin baru ber-status pending (harus disetujui
	// admin_utama sebelum bisa login).
	Signup(username, email, password string) (*model.AdminProfile, error)
	// Login menerima email ATAU username. Hanya profil active dengan minimal
	// satu role yang lolos; sisanya mendapat ErrNoAdminAccess tanpa token
	// apa pun diterbitkan (tidak ada kondisi setengah-login).
	Login(identifier, password string) (*model.AdminProfile, []string, error)
	// SetupFirstAdmin membuat admin_utama pertama. Hanya berhasil selama
	// belum ada profil admin sama sekali.
	SetupFirstAdmin(username, email, password string) (*model.AdminProfile, error)
}

type authService struct {
	profileRepo repository.ProfileRepository
}

// NewAuthService menghubungkan Service dengan Repository
func NewAuthService(profileRepo repository.ProfileRepository) AuthService {
	return &authService{
		profileRepo: profileRepo,
	}
}

// validateCredentials memeriksa format username & isi password
// (format email sudah dicek di binding handler).
func validateCredentials(username, password string) error {
	if !usernameRe.MatchString(username) {
		return errors.New("username harus 3-30 karakter alfanumerik/underscore")
	}
	if len(password) < 8 {
		return errors.New("password minimal 8 karakter")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return errors.New("password harus mengandung huruf dan angka")
	}
	return nil
}

func (s *authService) Signup(username, email, password string) (*model.AdminProfile, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &model.AdminProfile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       model.AccountPending, // selalu pending saat dibuat
	}

	// Profil + role dalam satu transaksi: gagal salah satu, batal semua.
	if err := s.profileRepo.CreateWithRole(profile, utils.RoleAdmin); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *authService) Login(identifier, password string) (*model.AdminProfile, []string, error) {
	// 1. Cari profil berdasarkan email/username
	profile, err := s.profileRepo.FindByIdentifier(identifier)
	if err != nil {
		return nil, nil, errors.New("email atau username tidak ditemukan")
	}

	// 2. Cek password
	err = bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password))
	if err != nil {
		return nil, nil, errors.New("password salah")
	}

	// 3. Hanya profil active yang boleh menyelesaikan login
	if profile.Status != model.AccountActive {
		return nil, nil, ErrNoAdminAccess
	}

	// 4. Ambil role; tanpa role sama sekali = tidak ada akses admin
	roles, err := s.profileRepo.FindRoles(profile.UserID)
	if err != nil {
		return nil, nil, err
	}
	if len(roles) == 0 {
		return nil, nil, ErrNoAdminAccess
	}

	return profile, roles, nil
}

func (s *authService) SetupFirstAdmin(username, email, password string) (*model.AdminProfile, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	count, err := s.profileRepo.CountAll()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("setup sudah pernah dilakukan")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &model.AdminProfile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       model.AccountActive, // admin pertama langsung aktif
	}

	if err := s.profileRepo.CreateWithRole(profile, utils.RoleAdminUtama); err != nil {
		return nil, err
	}

	return profile, nil
}
