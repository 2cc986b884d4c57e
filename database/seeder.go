package database

import (
	"log"
	"os"

	"sipebaru-backend/app/model"
	"sipebaru-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder yang dibutuhkan.
// Panggil ini sekali di main.go setelah InitDB berhasil.
func RunSeeders(db *gorm.DB) {
	SeedTicketCounter(db)
	SeedDepartments(db)
	SeedFirstAdmin(db)
}

// ===============================
//  SEED TICKET COUNTER
// ===============================

// SeedTicketCounter memastikan baris penghitung nomor tiket (id=1) ada.
// Tanpa baris ini transaksi insert komplain akan gagal.
func SeedTicketCounter(db *gorm.DB) {
	var count int64
	db.Model(&model.TicketCounter{}).Count(&count)
	if count > 0 {
		return
	}

	if err := db.Create(&model.TicketCounter{ID: 1, LastNumber: 0}).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed ticket counter: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed ticket counter (mulai dari BR-0001)")
}

// ===============================
//  SEED DEPARTMENTS
// ===============================

// SeedDepartments menambahkan departemen awal untuk dropdown form pelaporan.
func SeedDepartments(db *gorm.DB) {
	var count int64
	db.Model(&model.Department{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Departemen sudah ada, skip seeding departments.")
		return
	}

	departments := []model.Department{
		{ID: uuid.New(), Name: "Umum"},
		{ID: uuid.New(), Name: "IT"},
		{ID: uuid.New(), Name: "Produksi"},
		{ID: uuid.New(), Name: "Keuangan"},
	}

	if err := db.Create(&departments).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed departments: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed departemen awal")
}

// ===============================
//  SEED FIRST ADMIN
// ===============================

// SeedFirstAdmin membuat admin_utama pertama dari environment
// (FIRST_ADMIN_EMAIL, FIRST_ADMIN_USERNAME, FIRST_ADMIN_PASSWORD).
// Alternatif dari endpoint POST /api/v1/auth/setup; di-skip jika env kosong
// atau sudah ada profil admin apa pun.
func SeedFirstAdmin(db *gorm.DB) {
	email := os.Getenv("FIRST_ADMIN_EMAIL")
	username := os.Getenv("FIRST_ADMIN_USERNAME")
	password := os.Getenv("FIRST_ADMIN_PASSWORD")
	if email == "" || username == "" || password == "" {
		return
	}

	var count int64
	db.Model(&model.AdminProfile{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Profil admin sudah ada, skip seeding first admin.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("[SEEDER] Gagal hash password admin pertama: %v", err)
	}

	userID := uuid.New()
	profile := model.AdminProfile{
		ID:           uuid.New(),
		UserID:       userID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Status:       model.AccountActive, // admin pertama langsung aktif
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserRole{UserID: userID, Role: utils.RoleAdminUtama}).Error
	})
	if err != nil {
		log.Fatalf("[SEEDER] Gagal seed first admin: %v", err)
	}

	log.Printf("[SEEDER] Berhasil seed admin_utama pertama: %s", username)
}
