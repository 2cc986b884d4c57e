package repository

import (
	"sipebaru-backend/app/model"

	"gorm.io/gorm"
)

// SipebaruRepository menangani akun pegawai SIPebaru (ruang identitas
// terpisah dari akun admin).
type SipebaruRepository interface {
	Create(u *model.SipebaruUser) error
	FindAll() ([]model.SipebaruUser, error)
	FindByFID(fid uint) (*model.SipebaruUser, error)
	// FindByIdentifier menerima RFID atau email.
	FindByIdentifier(identifier string) (*model.SipebaruUser, error)
	// UpdateStatus: sama seperti profil admin, hanya dari pending;
	// RowsAffected == 0 = sudah diproses / sudah dihapus.
	UpdateStatus(fid uint, to string) (int64, error)
	Delete(fid uint) (int64, error)
}

type sipebaruRepository struct {
	db *gorm.DB
}

func NewSipebaruRepository(db *gorm.DB) SipebaruRepository {
	return &sipebaruRepository{db}
}

func (r *sipebaruRepository) Create(u *model.SipebaruUser) error {
	return r.db.Create(u).Error
}

func (r *sipebaruRepository) FindAll() ([]model.SipebaruUser, error) {
	var users []model.SipebaruUser
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *sipebaruRepository) FindByFID(fid uint) (*model.SipebaruUser, error) {
	var u model.SipebaruUser
	if err := r.db.First(&u, "fid = ?", fid).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sipebaruRepository) FindByIdentifier(identifier string) (*model.SipebaruUser, error) {
	var u model.SipebaruUser
	err := r.db.
		Where("rfid = ? OR email = ?", identifier, identifier).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *sipebaruRepository) UpdateStatus(fid uint, to string) (int64, error) {
	res := r.db.Model(&model.SipebaruUser{}).
		Where("fid = ? AND status = ?", fid, model.AccountPending).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *sipebaruRepository) Delete(fid uint) (int64, error) {
	res := r.db.Delete(&model.SipebaruUser{}, "fid = ?", fid)
	return res.RowsAffected, res.Error
}
