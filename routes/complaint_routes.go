package routes

import (
	"sipebaru-backend/app/service"
	"sipebaru-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ComplaintRoutes(r *gin.Engine, s service.ComplaintService) {

	// Rute publik: form pelaporan + cek status (tanpa login)
	public := r.Group("/api/v1/complaints")
	{
		public.POST("", s.Submit)
		public.GET("/status", s.LookupStatus)
	}

	// Rute panel admin (wajib JWT; viewer hanya boleh baca)
	admin := r.Group("/api/v1/admin/complaints")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.GET("", s.GetAll)
		admin.POST("", s.Create) // entri manual
		admin.GET("/:id", s.GetDetail)
		admin.PUT("/:id", s.Update)
		admin.DELETE("/:id", s.Delete)
	}
}
