package routes

import (
	"net/http"

	"sipebaru-backend/app/service"
	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler adalah struct pengelola request untuk autentikasi panel admin.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SetupAuthRoutes mengatur Peta URL (Routing) autentikasi admin.
func (h *AuthHandler) SetupAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/api/v1/auth")
	{
		// Signup publik: profil dibuat pending, menunggu admin_utama
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		// Bootstrap admin_utama pertama (hanya selama belum ada profil)
		authGroup.POST("/setup", h.Setup)
	}
}

// Signup menangani pendaftaran admin baru (status pending).
func (h *AuthHandler) Signup(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		resp := utils.BuildResponseFailed("Input tidak valid", err.Error(), nil)
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	profile, err := h.authService.Signup(input.Username, input.Email, input.Password)
	if err != nil {
		resp := utils.BuildResponseFailed("Gagal registrasi", err.Error(), nil)
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	resp := utils.BuildResponseSuccess("Registrasi berhasil, menunggu persetujuan admin utama", map[string]interface{}{
		"id":       profile.ID,
		"username": profile.Username,
		"status":   profile.Status,
	})
	ctx.JSON(http.StatusCreated, resp)
}

// Login menangani proses masuk panel admin.
// Hanya profil active dengan minimal satu role yang mendapat token.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"` // email atau username
		Password   string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		resp := utils.BuildResponseFailed("Input login tidak valid", err.Error(), nil)
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	profile, roles, err := h.authService.Login(input.Identifier, input.Password)
	if err != nil {
		resp := utils.BuildResponseFailed("Login gagal", err.Error(), nil)
		ctx.JSON(http.StatusUnauthorized, resp)
		return
	}

	// Reduksi banyak-role menjadi satu role efektif (precedence tetap).
	displayRole := utils.ResolveDisplayRole(roles)

	token, err := utils.GenerateToken(profile.UserID, profile.Username, displayRole, roles)
	if err != nil {
		resp := utils.BuildResponseFailed("Gagal membuat token", err.Error(), nil)
		ctx.JSON(http.StatusInternalServerError, resp)
		return
	}

	data := map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       profile.UserID,
			"username": profile.Username,
			"email":    profile.Email,
			"role":     displayRole,
			"roles":    roles,
		},
	}

	resp := utils.BuildResponseSuccess("Login berhasil", data)
	ctx.JSON(http.StatusOK, resp)
}

// Setup membuat admin_utama pertama (pengganti alur /setup di frontend).
func (h *AuthHandler) Setup(ctx *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := ctx.ShouldBindJSON(&input); err != nil {
		resp := utils.BuildResponseFailed("Input tidak valid", err.Error(), nil)
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	profile, err := h.authService.SetupFirstAdmin(input.Username, input.Email, input.Password)
	if err != nil {
		resp := utils.BuildResponseFailed("Setup gagal", err.Error(), nil)
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}

	resp := utils.BuildResponseSuccess("Admin utama pertama berhasil dibuat", map[string]interface{}{
		"id":       profile.ID,
		"username": profile.Username,
	})
	ctx.JSON(http.StatusCreated, resp)
}
