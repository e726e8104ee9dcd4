package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type AdminLoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

/*
POST /api/admin/login
- Kullanıcı adı + şifre (bcrypt) kontrolü
- Başarılıysa imzalı, süreli oturum anahtarı döner
*/
func AdminLogin(admins *store.Admins, jwtSecret string, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/login"
		defer handlePanic(c, route)

		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		admin, err := admins.Authenticate(ctx, req.UserName, req.Password)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}

		now := time.Now()
		token, err := middleware.IssueAdminToken(jwtSecret, admin, sessionTTL, now)
		if err != nil {
			zap.L().Error("token generation failed", zap.Error(err))
			respondWithError(c, http.StatusInternalServerError, route, msgInternal)
			return
		}

		zap.L().Info("admin logged in", zap.String("userName", admin.UserName), zap.String("role", string(admin.Role)))
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"token":     token,
			"expiresAt": now.Add(sessionTTL).UTC().Format(time.RFC3339),
			"admin":     admin,
		})
	}
}

// AdminMe returns the claims of the current admin session.
func AdminMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.AdminFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, "GET /api/admin/me", "Oturum bulunamadı.")
			return
		}
		respondOK(c, gin.H{"id": claims.Subject, "userName": claims.UserName, "role": claims.Role})
	}
}
