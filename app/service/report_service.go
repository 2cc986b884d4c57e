package service

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sipebaru-backend/app/model"
	"sipebaru-backend/app/repository"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Kolom ekspor laporan komplain (CSV / XLSX / PDF memakai urutan yang sama).
var exportHeaders = []string{
	"Nomor Tiket",
	"Kode Pengaduan",
	"Nama Pelapor",
	"Departemen",
	"Kompartemen",
	"Nama Barang",
	"Jumlah",
	"Status",
	"Tanggal Lapor",
	"Tanggal Proses",
	"Tanggal Selesai",
	"Catatan Admin",
}

type ReportService interface {
	GetDashboard(ctx *gin.Context)
	Export(ctx *gin.Context)
}

type reportService struct {
	reportRepo    repository.ReportRepository
	complaintRepo repository.ComplaintRepository
}

func NewReportService(
	reportRepo repository.ReportRepository,
	complaintRepo repository.ComplaintRepository,
) ReportService {
	return &reportService{
		reportRepo:    reportRepo,
		complaintRepo: complaintRepo,
	}
}

// GetDashboard menggabungkan hitungan status terkini (Postgres) dengan
// agregasi riwayat (Mongo): per periode, per departemen, rata-rata lama
// penyelesaian.
func (s *reportService) GetDashboard(ctx *gin.Context) {
	byStatus, err := s.complaintRepo.CountByStatus()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil statistik", err.Error(), nil))
		return
	}

	stats, err := s.reportRepo.GetStatistics(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil statistik", err.Error(), nil))
		return
	}

	ctx.JSON(http.StatusOK,
		utils.BuildResponseSuccess("Berhasil mengambil statistik", map[string]interface{}{
			"byStatus":             byStatus,
			"totalReported":        stats.TotalReported,
			"reportedByPeriod":     stats.ReportedByPeriod,
			"reportedByDepartment": stats.ReportedByDepartment,
			"avgCompletionHours":   stats.AvgCompletionHours,
		}))
}

// Export menghasilkan file laporan dari daftar komplain terfilter.
// ?format=csv (default) | xlsx | pdf.
func (s *reportService) Export(ctx *gin.Context) {
	filter := repository.ComplaintFilter{
		Status:     ctx.Query("status"),
		Department: ctx.Query("department"),
		Search:     ctx.Query("search"),
	}

	complaints, err := s.complaintRepo.FindAll(filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError,
			utils.BuildResponseFailed("Gagal mengambil data laporan", err.Error(), nil))
		return
	}

	rows := buildExportRows(complaints)
	filename := "laporan-komplain-" + time.Now().Format("20060102")

	switch ctx.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := utils.BuildCSV(exportHeaders, rows)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal membuat CSV", err.Error(), nil))
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", payload)

	case "xlsx":
		payload, err := buildExportXLSX(rows)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal membuat XLSX", err.Error(), nil))
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)

	case "pdf":
		payload, err := buildExportPDF(rows)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError,
				utils.BuildResponseFailed("Gagal membuat PDF", err.Error(), nil))
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
		ctx.Data(http.StatusOK, "application/pdf", payload)

	default:
		ctx.JSON(http.StatusBadRequest,
			utils.BuildResponseFailed("Format ekspor tidak dikenal", ctx.Query("format"), nil))
	}
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func buildExportRows(complaints []model.Complaint) [][]string {
	rows := make([][]string, 0, len(complaints))
	for _, c := range complaints {
		rows = append(rows, []string{
			c.TicketNumber,
			c.ComplaintCode,
			c.ReporterName,
			c.Department,
			c.Kompartemen,
			c.ItemName,
			strconv.Itoa(c.Quantity),
			c.Status,
			c.ReportedAt.Format("2006-01-02 15:04"),
			formatExportTime(c.ProcessedAt),
			formatExportTime(c.CompletedAt),
			c.AdminNote,
		})
	}
	return rows
}

// buildExportXLSX menghasilkan workbook satu sheet dengan header tebal.
func buildExportXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	// Jangan defer Close di sini: WriteTo butuh file masih terbuka.

	sheetName := "Laporan Komplain"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gagal membuat sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return buf.Bytes(), nil
}

// buildExportPDF menghasilkan tabel ber-halaman (landscape A4); header kolom
// diulang di tiap halaman baru.
func buildExportPDF(rows [][]string) ([]byte, error) {
	widths := []float64{22, 24, 30, 26, 24, 30, 14, 20, 26, 26, 26, 40}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPage()

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		for i, h := range exportHeaders {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Laporan Komplain SIPebaru", "", 1, "C", false, 0, "")
	writeHeader()

	for _, row := range rows {
		// 190mm: batas bawah area isi A4 landscape
		if pdf.GetY() > 190 {
			pdf.AddPage()
			writeHeader()
		}
		for i, val := range row {
			pdf.CellFormat(widths[i], 6, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
