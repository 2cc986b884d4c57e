package repository

import (
	"errors"
	"strings"

	"sipebaru-backend/app/model"
	"sipebaru-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComplaintFilter menyaring daftar komplain di panel admin.
type ComplaintFilter struct {
	Status     string // kosong = semua
	Department string // kosong = semua
	Search     string // substring di ticket_number / item_name / reporter_name
}

// ComplaintRepository mendefinisikan kontrak operasi database untuk entity Complaint.
type ComplaintRepository interface {
	// CreateWithTicket mengisi TicketNumber + ComplaintCode lalu menyimpan
	// komplain dalam SATU transaksi (tidak ada nomor tiket hangus).
	CreateWithTicket(c *model.Complaint) error
	FindAll(filter ComplaintFilter) ([]model.Complaint, error)
	FindByID(id uuid.UUID) (*model.Complaint, error)
	// FindByLookup mencari untuk halaman cek-status publik: kode pengaduan
	// persis, atau prefix nomor tiket.
	FindByLookup(q string) (*model.Complaint, error)
	Update(c *model.Complaint) error
	// Delete mengembalikan jumlah baris terhapus supaya pemanggil bisa
	// membedakan "sudah tidak ada" dari sukses.
	Delete(id uuid.UUID) (int64, error)
	CountByStatus() (map[string]int64, error)
}

// likeEscaper menetralkan metakarakter pola LIKE/ILIKE pada input user,
// supaya "%" atau "_" dicocokkan sebagai karakter biasa.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db}
}

// CreateWithTicket: baris ticket_counters di-lock FOR UPDATE, nomor dinaikkan,
// kode pengaduan di-generate (retry kalau tabrakan), lalu insert — semuanya
// satu transaksi. Gagal di langkah mana pun membatalkan kenaikan nomor.
func (r *complaintRepository) CreateWithTicket(c *model.Complaint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var counter model.TicketCounter
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&counter, "id = ?", 1).Error; err != nil {
			return err
		}

		counter.LastNumber++
		if err := tx.Model(&model.TicketCounter{}).
			Where("id = ?", 1).
			Update("last_number", counter.LastNumber).Error; err != nil {
			return err
		}

		c.TicketNumber = utils.FormatTicketNumber(counter.LastNumber)

		// Kode 5 karakter: cek keunikan + retry di dalam transaksi yang sama.
		c.ComplaintCode = ""
		for attempt := 0; attempt < 5; attempt++ {
			code, err := utils.GenerateComplaintCode()
			if err != nil {
				return err
			}
			var exists int64
			if err := tx.Model(&model.Complaint{}).
				Where("complaint_code = ?", code).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				c.ComplaintCode = code
				break
			}
		}
		if c.ComplaintCode == "" {
			return errors.New("gagal menghasilkan kode pengaduan unik")
		}

		return tx.Create(c).Error
	})
}

// FindAll mengambil daftar komplain terbaru lebih dulu, dengan filter opsional.
func (r *complaintRepository) FindAll(filter ComplaintFilter) ([]model.Complaint, error) {
	q := r.db.Order("reported_at DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where("ticket_number ILIKE ? OR item_name ILIKE ? OR reporter_name ILIKE ?", like, like, like)
	}

	var complaints []model.Complaint
	err := q.Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepository) FindByID(id uuid.UUID) (*model.Complaint, error) {
	var c model.Complaint
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByLookup: input dipakai apa adanya (sudah di-trim oleh service).
// Kode pengaduan dicocokkan persis (case-insensitive), nomor tiket
// secara prefix, supaya "BR-00" pun menemukan tiket terbaru yang cocok.
func (r *complaintRepository) FindByLookup(q string) (*model.Complaint, error) {
	var c model.Complaint
	err := r.db.
		Where("complaint_code = ? OR ticket_number ILIKE ?", strings.ToUpper(q), escapeLike(q)+"%").
		Order("reported_at DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepository) Update(c *model.Complaint) error {
	return r.db.Save(c).Error
}

func (r *complaintRepository) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Complaint{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// CountByStatus menghitung jumlah komplain per status untuk dashboard.
func (r *complaintRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&model.Complaint{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int64{
		model.ComplaintPending:    0,
		model.ComplaintProcessing: 0,
		model.ComplaintCompleted:  0,
	}
	for _, r := range rows {
		result[r.Status] = r.Total
	}
	return result, nil
}
