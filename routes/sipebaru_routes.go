package routes

import (
	"sipebaru-backend/app/service"

	"github.com/gin-gonic/gin"
)

func SipebaruRoutes(r *gin.Engine, s service.SipebaruService) {

	// Alur pegawai SIPebaru: identitas terpisah dari akun admin,
	// sesi server-side di Redis (header X-Session-Token)
	sipebaru := r.Group("/api/v1/sipebaru")
	{
		sipebaru.POST("/signup", s.Register)
		sipebaru.POST("/login", s.Login)
		sipebaru.GET("/me", s.Me)
		sipebaru.POST("/logout", s.Logout)
	}
}
