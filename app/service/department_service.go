package service

import (
	"net/http"
	"strings"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DepartmentService interface {
	GetAll(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type departmentService struct {
	repo repository.DepartmentRepository
}

func NewDepartmentService(repo repository.DepartmentRepository) DepartmentService {
	return &departmentService{repo}
}

// GetAll juga dipakai form publik (dropdown departemen), jadi tidak digating role.
func (s *departmentService) GetAll(ctx *gin.Context) {
	departments, err := s.repo.FindAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil departemen", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Berhasil mengambil daftar departemen", departments))
}

func (s *departmentService) Create(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	name := strings.TrimSpace(input.Name)
	if existing, err := s.repo.FindByName(name); err == nil && existing != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Nama departemen sudah dipakai", name, nil))
		return
	}

	department := model.Department{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.repo.Create(&department); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal membuat departemen", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Departemen berhasil dibuat", department))
}

// Update mengganti nama departemen. Komplain lama TIDAK ikut berubah
// (referensi hanya berupa nama).
func (s *departmentService) Update(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	department, err := s.repo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Departemen tidak ditemukan", err.Error(), nil))
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	department.Name = strings.TrimSpace(input.Name)

	if err := s.repo.Update(department); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui departemen", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Departemen berhasil diperbarui", department))
}

func (s *departmentService) Delete(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	rows, err := s.repo.Delete(id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus departemen", err.Error(), nil))
		return
	}
	if rows == 0 {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Departemen tidak ditemukan", "not_found", nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Departemen berhasil dihapus", nil))
}
