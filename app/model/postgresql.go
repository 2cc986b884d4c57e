package model

import (
	"time"

	"github.com/google/uuid"
)

// Complaint merepresentasikan satu laporan barang rusak.
// Kolom mengikuti form publik SIPebaru: nomor tiket (BR-0004), kode pengaduan
// 5 karakter sebagai kunci pencarian publik, plus data barang & foto bukti.
type Complaint struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TicketNumber  string    `gorm:"type:varchar(20);unique;not null"`
	ComplaintCode string    `gorm:"type:varchar(5);unique;not null"`
	ReporterName  string    `gorm:"not null"`

	// Department disimpan sebagai teks (denormalisasi dari departments.name).
	// Rename/hapus departemen TIDAK mengubah komplain lama.
	Department  string `gorm:"not null"`
	ItemName    string `gorm:"not null"`
	Quantity    int    `gorm:"not null;check:quantity >= 1 AND quantity <= 100000"`
	Description string `gorm:"type:varchar(2000)"`

	// Status mengikuti alur: pending -> processing -> completed.
	// Invariant: ProcessedAt == nil <=> Status == pending.
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','processing','completed')"`
	ReportedAt  time.Time  `gorm:"not null"`
	ProcessedAt *time.Time // diisi saat status keluar dari pending
	CompletedAt *time.Time // diisi saat status menjadi completed

	// Foto disimpan sebagai object key di bucket complaint-photos,
	// di-sign (berlaku 1 jam) setiap kali dikirim ke frontend.
	PhotoURL           string
	CompletionPhotoURL string

	AdminNote   string
	Kompartemen string // sub-lokasi opsional

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Department menyimpan daftar departemen yang bisa dipilih saat melapor.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"unique;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// AdminProfile merepresentasikan akun panel admin.
// Identitas auth dan profil dijadikan satu baris (tidak ada provider auth
// eksternal lagi); signup membuat profil ber-status pending yang harus
// disetujui admin_utama sebelum bisa login.
type AdminProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;unique;not null"` // identitas auth
	Username     string    `gorm:"unique;not null"`
	Email        string    `gorm:"unique;not null"`
	PasswordHash string    `gorm:"not null" json:"-"` // tidak pernah ikut response

	// Status approval: pending -> active / rejected (lihat status.go).
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','active','rejected')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// UserRole menyimpan pasangan (user_id, role). Satu user boleh memegang
// beberapa role; role efektif dihitung via utils.ResolveDisplayRole.
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(20);primaryKey;check:role IN ('super_admin','admin_utama','admin','viewer')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// SipebaruUser adalah ruang identitas pegawai SIPebaru, terpisah dari akun
// admin. Login memakai RFID atau email (minimal salah satu harus terisi).
type SipebaruUser struct {
	FID          uint    `gorm:"primaryKey;autoIncrement;column:fid"`
	Nama         string  `gorm:"not null"`
	NPK          string  `gorm:"type:varchar(30);not null;column:npk"`
	UnitKerja    string  `gorm:"not null"`
	RFID         *string `gorm:"type:varchar(64);unique;column:rfid"`
	Email        *string `gorm:"type:varchar(255);unique"`
	PasswordHash string  `gorm:"not null" json:"-"` // tidak pernah ikut response

	Status    string    `gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','active','rejected')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TicketCounter adalah baris tunggal (id=1) penghitung nomor tiket.
// Di-lock FOR UPDATE di dalam transaksi insert komplain supaya generate-nomor
// dan insert menjadi satu operasi atomik (tidak ada nomor hangus saat insert
// gagal).
type TicketCounter struct {
	ID         int `gorm:"primaryKey"`
	LastNumber int `gorm:"not null;default:0"`
}
