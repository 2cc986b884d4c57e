package service

import (
	"log"
	"net/http"
	"strings"
	"time"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintService interface {
	// Publik (tanpa login)
	Submit(ctx *gin.Context)
	LookupStatus(ctx *gin.Context)

	// Panel admin
	GetAll(ctx *gin.Context)
	GetDetail(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	eventRepo     repository.EventRepository
	storage       *utils.StorageClient
}

func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	eventRepo repository.EventRepository,
	storage *utils.StorageClient,
) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		eventRepo:     eventRepo,
		storage:       storage,
	}
}

// helper: cek role boleh menulis komplain (semua kecuali viewer)
func ensureCanWrite(ctx *gin.Context) bool {
	roleI, _ := ctx.Get("role")
	if role, _ := roleI.(string); !utils.CanWriteComplaints(role) {
		ctx.JSON(http.StatusForbidden,
			utils.BuildResponseFailed("Role Anda tidak diizinkan mengubah komplain", "forbidden", nil))
		return false
	}
	return true
}

func actorUsername(ctx *gin.Context) string {
	usernameI, _ := ctx.Get("username")
	username, _ := usernameI.(string)
	return username
}

// submitInput: wadah form pelaporan (dipakai form publik & entri manual admin).
type submitInput struct {
	ReporterName string `form:"reporterName" json:"reporterName" binding:"required"`
	Department   string `form:"department" json:"department" binding:"required"`
	ItemName     string `form:"itemName" json:"itemName" binding:"required"`
	Quantity     int    `form:"quantity" json:"quantity" binding:"required,min=1,max=100000"`
	Description  string `form:"description" json:"description" binding:"omitempty,max=2000"`
	Kompartemen  string `form:"kompartemen" json:"kompartemen"`
}

// TimelineEntry: satu baris progres di halaman cek-status publik.
// Sengaja tidak memuat note/actor (catatan internal admin).
type TimelineEntry struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ComplaintStatusView adalah proyeksi tersaring untuk pencarian status publik.
// Tidak punya field nama pelapor ataupun catatan admin, sehingga tidak ada
// jalur kode yang bisa membocorkannya.
type ComplaintStatusView struct {
	TicketNumber  string          `json:"ticketNumber"`
	ComplaintCode string          `json:"complaintCode"`
	Department    string          `json:"department"`
	ItemName      string          `json:"itemName"`
	Quantity      int             `json:"quantity"`
	Description   string          `json:"description,omitempty"`
	Kompartemen   string          `json:"kompartemen,omitempty"`
	Status        string          `json:"status"`
	ReportedAt    time.Time       `json:"reportedAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	PhotoURL      string          `json:"photoUrl,omitempty"`
	Timeline      []TimelineEntry `json:"timeline"`
}

// submitComplaint: jalur bersama form publik dan entri manual admin.
// Nomor tiket + kode pengaduan + insert = satu transaksi di repository;
// upload foto dan pencatatan event menyusul setelah baris tersimpan.
func (s *complaintService) submitComplaint(ctx *gin.Context, actor string) {
	var input submitInput
	if err := ctx.ShouldBind(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	complaint := model.Complaint{
		ID:           uuid.New(),
		ReporterName: input.ReporterName,
		Department:   input.Department,
		ItemName:     input.ItemName,
		Quantity:     input.Quantity,
		Description:  input.Description,
		Kompartemen:  input.Kompartemen,
		Status:       model.ComplaintPending, // selalu pending saat dibuat
		ReportedAt:   time.Now(),
		ProcessedAt:  nil, // invariant: nil selama status pending
	}

	if err := s.complaintRepo.CreateWithTicket(&complaint); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menyimpan komplain", err.Error(), nil))
		return
	}

	// Foto bukti opsional. Gagal upload tidak membatalkan komplain yang
	// sudah tersimpan; cukup dicatat di log.
	if fh, err := ctx.FormFile("photo"); err == nil && fh != nil {
		objectKey, upErr := s.storage.UploadComplaintPhoto(complaint.TicketNumber, fh)
		if upErr != nil {
			log.Printf("Gagal upload foto untuk %s: %v", complaint.TicketNumber, upErr)
		} else {
			complaint.PhotoURL = objectKey
			_ = s.complaintRepo.Update(&complaint)
		}
	}

	// Event pertama di timeline: pending. Gagal menulis event tidak
	// membatalkan komplain yang sudah tersimpan, tapi harus tercatat.
	if err := s.eventRepo.Append(ctx.Request.Context(), &model.ComplaintEvent{
		ComplaintID:  complaint.ID,
		TicketNumber: complaint.TicketNumber,
		Status:       model.ComplaintPending,
		Actor:        actor,
		Department:   complaint.Department,
		ReportedAt:   complaint.ReportedAt,
	}); err != nil {
		log.Printf("Gagal mencatat event timeline untuk %s: %v", complaint.TicketNumber, err)
	}

	ctx.JSON(http.StatusCreated,
		utils.BuildResponseSuccess("Komplain berhasil dikirim", map[string]interface{}{
			"ticketNumber":  complaint.TicketNumber,
			"complaintCode": complaint.ComplaintCode,
		}))
}

// Submit: form pelaporan publik, tanpa login.
func (s *complaintService) Submit(ctx *gin.Context) {
	s.submitComplaint(ctx, "")
}

// Create: entri manual dari panel admin (jalur insert yang sama).
func (s *complaintService) Create(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}
	s.submitComplaint(ctx, actorUsername(ctx))
}

// LookupStatus: pencarian status publik berdasarkan kode pengaduan atau
// potongan nomor tiket. Hasilnya proyeksi tersaring (tanpa nama pelapor,
// tanpa catatan admin).
func (s *complaintService) LookupStatus(ctx *gin.Context) {
	q := strings.TrimSpace(ctx.Query("q"))
	if q == "" {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Masukkan kode pengaduan atau nomor tiket", "empty_query", nil))
		return
	}

	complaint, err := s.complaintRepo.FindByLookup(q)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Komplain tidak ditemukan", "not_found", nil))
		return
	}

	view := ComplaintStatusView{
		TicketNumber:  complaint.TicketNumber,
		ComplaintCode: complaint.ComplaintCode,
		Department:    complaint.Department,
		ItemName:      complaint.ItemName,
		Quantity:      complaint.Quantity,
		Description:   complaint.Description,
		Kompartemen:   complaint.Kompartemen,
		Status:        complaint.Status,
		ReportedAt:    complaint.ReportedAt,
		ProcessedAt:   complaint.ProcessedAt,
		CompletedAt:   complaint.CompletedAt,
		Timeline:      []TimelineEntry{},
	}

	if url, err := s.storage.SignedURL(complaint.PhotoURL); err == nil {
		view.PhotoURL = url
	}

	events, err := s.eventRepo.FindByComplaintID(ctx.Request.Context(), complaint.ID)
	if err == nil {
		for _, ev := range events {
			view.Timeline = append(view.Timeline, TimelineEntry{
				Status:    ev.Status,
				CreatedAt: ev.CreatedAt,
			})
		}
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Status komplain ditemukan", view))
}

// GetAll: daftar komplain panel admin dengan filter + paginasi
// (10 baris per halaman, urutan terjaga antar halaman).
func (s *complaintService) GetAll(ctx *gin.Context) {
	filter := repository.ComplaintFilter{
		Status:     ctx.Query("status"),
		Department: ctx.Query("department"),
		Search:     ctx.Query("search"),
	}

	complaints, err := s.complaintRepo.FindAll(filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil daftar komplain", err.Error(), nil))
		return
	}

	params := utils.ParsePageParams(ctx)
	page := utils.PageSlice(complaints, params)

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Berhasil mengambil daftar komplain", map[string]interface{}{
			"complaints": page,
			"page":       params.Page,
			"perPage":    params.PerPage,
			"totalItems": len(complaints),
			"totalPages": utils.TotalPages(len(complaints), params.PerPage),
		}))
}

// GetDetail: detail komplain untuk admin, lengkap dengan signed URL foto
// dan timeline penuh (termasuk catatan & actor).
func (s *complaintService) GetDetail(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Komplain tidak ditemukan", err.Error(), nil))
		return
	}

	photoURL, _ := s.storage.SignedURL(complaint.PhotoURL)
	completionURL, _ := s.storage.SignedURL(complaint.CompletionPhotoURL)
	events, _ := s.eventRepo.FindByComplaintID(ctx.Request.Context(), complaint.ID)

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Berhasil mengambil detail komplain", map[string]interface{}{
			"complaint":          complaint,
			"photoUrl":           photoURL,
			"completionPhotoUrl": completionURL,
			"timeline":           events,
		}))
}

// Update: edit komplain oleh admin. Perubahan status menjaga invariant
// processed_at (nil <=> pending) dan menulis event ke timeline.
func (s *complaintService) Update(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	complaint, err := s.complaintRepo.FindByID(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Komplain tidak ditemukan", err.Error(), nil))
		return
	}

	var input struct {
		ReporterName string `form:"reporterName" json:"reporterName"`
		Department   string `form:"department" json:"department"`
		ItemName     string `form:"itemName" json:"itemName"`
		Quantity     int    `form:"quantity" json:"quantity" binding:"omitempty,min=1,max=100000"`
		Description  string `form:"description" json:"description" binding:"omitempty,max=2000"`
		Kompartemen  string `form:"kompartemen" json:"kompartemen"`
		Status       string `form:"status" json:"status"`
		AdminNote    string `form:"adminNote" json:"adminNote"`
	}

	if err := ctx.ShouldBind(&input); err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Input tidak valid", err.Error(), nil))
		return
	}

	if input.ReporterName != "" {
		complaint.ReporterName = input.ReporterName
	}
	if input.Department != "" {
		complaint.Department = input.Department
	}
	if input.ItemName != "" {
		complaint.ItemName = input.ItemName
	}
	if input.Quantity != 0 {
		complaint.Quantity = input.Quantity
	}
	if input.Description != "" {
		complaint.Description = input.Description
	}
	if input.Kompartemen != "" {
		complaint.Kompartemen = input.Kompartemen
	}
	if input.AdminNote != "" {
		complaint.AdminNote = input.AdminNote
	}

	statusChanged := false
	if input.Status != "" && input.Status != complaint.Status {
		if !model.ValidComplaintStatus(input.Status) {
			ctx.JSON(http.StatusBadRequest,
				utils.BuildResponseFailed("Status tidak dikenal", input.Status, nil))
			return
		}

		complaint.Status = input.Status
		statusChanged = true
		now := time.Now()

		// Invariant: processed_at nil <=> status pending.
		switch input.Status {
		case model.ComplaintPending:
			complaint.ProcessedAt = nil
			complaint.CompletedAt = nil
		case model.ComplaintProcessing:
			if complaint.ProcessedAt == nil {
				complaint.ProcessedAt = &now
			}
			complaint.CompletedAt = nil
		case model.ComplaintCompleted:
			if complaint.ProcessedAt == nil {
				complaint.ProcessedAt = &now
			}
			complaint.CompletedAt = &now
		}
	}

	// Foto penyelesaian opsional (biasanya ikut saat status -> completed).
	if fh, err := ctx.FormFile("completionPhoto"); err == nil && fh != nil {
		objectKey, upErr := s.storage.UploadComplaintPhoto(complaint.TicketNumber, fh)
		if upErr != nil {
			log.Printf("Gagal upload foto penyelesaian untuk %s: %v", complaint.TicketNumber, upErr)
		} else {
			complaint.CompletionPhotoURL = objectKey
		}
	}

	if err := s.complaintRepo.Update(complaint); err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal memperbarui komplain", err.Error(), nil))
		return
	}

	if statusChanged {
		if err := s.eventRepo.Append(ctx.Request.Context(), &model.ComplaintEvent{
			ComplaintID:  complaint.ID,
			TicketNumber: complaint.TicketNumber,
			Status:       complaint.Status,
			Note:         input.AdminNote,
			Actor:        actorUsername(ctx),
			Department:   complaint.Department,
			ReportedAt:   complaint.ReportedAt,
		}); err != nil {
			log.Printf("Gagal mencatat event timeline untuk %s: %v", complaint.TicketNumber, err)
		}
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Komplain berhasil diperbarui", complaint))
}

// Delete: hard delete oleh admin, timeline di Mongo ikut dibersihkan.
func (s *complaintService) Delete(ctx *gin.Context) {
	if !ensureCanWrite(ctx) {
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ID salah (harus UUID)", err.Error(), nil))
		return
	}

	rows, err := s.complaintRepo.Delete(id)
	if err != nil && err != gorm.ErrRecordNotFound {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal menghapus komplain", err.Error(), nil))
		return
	}
	if rows == 0 {
		ctx.JSON(http.StatusNotFound,
			utils.BuildResponseFailed("Komplain tidak ditemukan", "not_found", nil))
		return
	}

	if err := s.eventRepo.DeleteByComplaintID(ctx.Request.Context(), id); err != nil {
		log.Printf("Gagal membersihkan timeline komplain %s: %v", id, err)
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Komplain berhasil dihapus", nil))
}
