package middleware

import (
	"net/http"
	"strings"

	"sipebaru-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// dan menyimpan informasi admin (userID, username, role, roles) ke dalam context.
// Role di-claims adalah hasil reduksi precedence saat login; dihitung ulang
// setiap kali login (tidak ada refresh token di desain ini).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ambil header Authorization
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_or_invalid_authorization_header", nil))
			c.Abort()
			return
		}

		// Ambil token string dan trim spasi sisa
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "empty_token", nil))
			c.Abort()
			return
		}

		// Validasi token (JWT parsing & verifikasi signature/expired)
		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			c.Abort()
			return
		}

		// Inject nilai-nilai penting ke context untuk dipakai di handler/service
		c.Set("userID", claims.UserID)     // UUID identitas auth (admin_profiles.user_id)
		c.Set("username", claims.Username) // dicatat sebagai actor di riwayat komplain
		c.Set("role", claims.Role)         // role efektif (hasil precedence)
		c.Set("roles", claims.Roles)

		// lanjut ke handler berikutnya
		c.Next()
	}
}
