package repository

import (
	"sipebaru-backend/app/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentRepository mendefinisikan kontrak operasi database untuk entity Department.
type DepartmentRepository interface {
	Create(d *model.Department) error
	FindAll() ([]model.Department, error)
	FindByID(id uuid.UUID) (*model.Department, error)
	FindByName(name string) (*model.Department, error)
	Update(d *model.Department) error
	// Delete TIDAK menyentuh komplain lama: referensi dari complaints hanya
	// berupa nama (soft reference).
	Delete(id uuid.UUID) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db}
}

func (r *departmentRepository) Create(d *model.Department) error {
	return r.db.Create(d).Error
}

func (r *departmentRepository) FindAll() ([]model.Department, error) {
	var departments []model.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) FindByID(id uuid.UUID) (*model.Department, error) {
	var d model.Department
	if err := r.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) FindByName(name string) (*model.Department, error) {
	var d model.Department
	if err := r.db.Where("name = ?", name).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) Update(d *model.Department) error {
	return r.db.Save(d).Error
}

func (r *departmentRepository) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Department{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
