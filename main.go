package main

import (
	"log"
	"os"

	"sipebaru-backend/app/repository"
	"sipebaru-backend/app/service"
	"sipebaru-backend/database"
	"sipebaru-backend/routes"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// =================================================================
	// LOAD ENV
	// =================================================================
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan environment default")
	}

	// =================================================================
	// INIT DB (POSTGRES + MONGODB + REDIS)
	// =================================================================
	dbConn, err := database.InitDB()
	if err != nil {
		log.Fatalf("❌ Gagal koneksi database: %v", err)
	}

	// =================================================================
	// SEED DATA (TICKET COUNTER + DEPARTEMEN + FIRST ADMIN)
	// =================================================================
	database.RunSeeders(dbConn.Postgres)

	// =================================================================
	// OBJECT STORAGE (FOTO KOMPLAIN)
	// =================================================================
	storage, err := utils.NewStorageClient()
	if err != nil {
		// Tanpa OSS aplikasi tetap jalan; upload foto akan ditolak per-request.
		log.Printf("⚠️  Object storage nonaktif: %v", err)
		storage = nil
	}

	// =================================================================
	// REPOSITORIES
	// =================================================================
	complaintRepo := repository.NewComplaintRepository(dbConn.Postgres)
	departmentRepo := repository.NewDepartmentRepository(dbConn.Postgres)
	profileRepo := repository.NewProfileRepository(dbConn.Postgres)
	sipebaruRepo := repository.NewSipebaruRepository(dbConn.Postgres)
	eventRepo := repository.NewEventRepository(dbConn.Mongo)
	reportRepo := repository.NewReportRepository(dbConn.Mongo)
	sessionRepo := repository.NewSessionRepository(dbConn.Redis)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(profileRepo)
	complaintService := service.NewComplaintService(complaintRepo, eventRepo, storage)
	accountService := service.NewAccountService(profileRepo, sipebaruRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	reportService := service.NewReportService(reportRepo, complaintRepo)
	sipebaruService := service.NewSipebaruService(sipebaruRepo, sessionRepo)

	// =================================================================
	// ROUTER
	// =================================================================
	r := gin.Default()

	// Autentikasi admin (signup/login/setup)
	authHandler := routes.NewAuthHandler(authService)
	authHandler.SetupAuthRoutes(r)

	// Pelaporan & cek status + CRUD komplain admin
	routes.ComplaintRoutes(r, complaintService)

	// Approval akun (admin & pegawai SIPebaru)
	routes.AccountRoutes(r, accountService)

	// Departemen
	routes.DepartmentRoutes(r, departmentService)

	// Dashboard & ekspor laporan
	routes.ReportRoutes(r, reportService)

	// Alur pegawai SIPebaru (signup/login/sesi)
	routes.SipebaruRoutes(r, sipebaruService)

	// Root endpoint (optional)
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "SIPebaru API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER
	// =================================================================
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running at http://localhost:" + port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Gagal menjalankan server: %v", err)
	}
}
