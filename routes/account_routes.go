package routes

import (
	"sipebaru-backend/app/service"
	"sipebaru-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AccountRoutes(r *gin.Engine, s service.AccountService) {

	accounts := r.Group("/api/v1/admin/accounts")
	accounts.Use(middleware.AuthMiddleware()) // wajib JWT
	{
		accounts.GET("", s.GetAllAccounts)
		accounts.POST("", s.CreateAdmin)

		// State machine approval: pending -> active / rejected (admin_utama)
		accounts.PUT("/:id/approve", s.ApproveAdminProfile)
		accounts.PUT("/:id/reject", s.RejectAdminProfile)
		accounts.DELETE("/:id", s.DeleteAdminProfile)
		accounts.PUT("/:id/password", s.UpdateAdminPassword)
	}

	sipebaru := r.Group("/api/v1/admin/sipebaru-users")
	sipebaru.Use(middleware.AuthMiddleware())
	{
		sipebaru.PUT("/:fid/approve", s.ApproveSipebaruUser)
		sipebaru.PUT("/:fid/reject", s.RejectSipebaruUser)
	}
}
