package routes

import (
	"sipebaru-backend/app/service"
	"sipebaru-backend/middleware"

	"github.com/gin-gonic/gin"
)

func DepartmentRoutes(r *gin.Engine, s service.DepartmentService) {

	// Dropdown departemen di form pelaporan publik
	r.GET("/api/v1/departments", s.GetAll)

	admin := r.Group("/api/v1/admin/departments")
	admin.Use(middleware.AuthMiddleware()) // wajib JWT
	{
		admin.GET("", s.GetAll)
		admin.POST("", s.Create)
		admin.PUT("/:id", s.Update)
		admin.DELETE("/:id", s.Delete)
	}
}
