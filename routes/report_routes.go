package routes

import (
	"sipebaru-backend/app/service"
	"sipebaru-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine, s service.ReportService) {

	reports := r.Group("/api/v1/admin/reports")
	reports.Use(middleware.AuthMiddleware()) // wajib JWT
	{
		reports.GET("", s.GetDashboard)
		reports.GET("/export", s.Export) // ?format=csv|xlsx|pdf
	}
}
