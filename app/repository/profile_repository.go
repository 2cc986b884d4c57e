package repository

import (
	"sipebaru-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository menangani akun panel admin (profil + role).
type ProfileRepository interface {
	// CreateWithRole menyimpan profil dan baris role dalam satu transaksi.
	// Gagal menyimpan salah satunya membatalkan keduanya (rollback identitas
	// kalau insert profil gagal).
	CreateWithRole(p *model.AdminProfile, role string) error
	FindAll() ([]model.AdminProfile, error)
	FindByID(id uuid.UUID) (*model.AdminProfile, error)
	FindByUserID(userID uuid.UUID) (*model.AdminProfile, error)
	// FindByIdentifier menerima email ATAU username (untuk form login).
	FindByIdentifier(identifier string) (*model.AdminProfile, error)
	// UpdateStatus: update optimistik satu baris, HANYA dari pending.
	// RowsAffected == 0 berarti profil sudah hilang atau sudah diproses.
	UpdateStatus(id uuid.UUID, to string) (int64, error)
	Delete(id uuid.UUID) (int64, error)
	UpdatePassword(userID uuid.UUID, passwordHash string) (int64, error)
	FindRoles(userID uuid.UUID) ([]string, error)
	CountAll() (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db}
}

func (r *profileRepository) CreateWithRole(p *model.AdminProfile, role string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserRole{UserID: p.UserID, Role: role}).Error
	})
}

func (r *profileRepository) FindAll() ([]model.AdminProfile, error) {
	var profiles []model.AdminProfile
	err := r.db.Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) FindByID(id uuid.UUID) (*model.AdminProfile, error) {
	var p model.AdminProfile
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByUserID(userID uuid.UUID) (*model.AdminProfile, error) {
	var p model.AdminProfile
	if err := r.db.First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindByIdentifier(identifier string) (*model.AdminProfile, error) {
	var p model.AdminProfile
	err := r.db.
		Where("email = ? OR username = ?", identifier, identifier).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatus membatasi transisi di level query: WHERE status = 'pending'.
// Transisi balik (active/rejected -> apa pun) tidak akan pernah mengenai baris.
func (r *profileRepository) UpdateStatus(id uuid.UUID, to string) (int64, error) {
	res := r.db.Model(&model.AdminProfile{}).
		Where("id = ? AND status = ?", id, model.AccountPending).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *profileRepository) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.AdminProfile{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *profileRepository) UpdatePassword(userID uuid.UUID, passwordHash string) (int64, error) {
	res := r.db.Model(&model.AdminProfile{}).
		Where("user_id = ?", userID).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}

func (r *profileRepository) FindRoles(userID uuid.UUID) ([]string, error) {
	var rows []model.UserRole
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	return roles, nil
}

func (r *profileRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.AdminProfile{}).Count(&count).Error
	return count, err
}
