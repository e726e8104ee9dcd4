package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

// AdminIssuer is the iss claim of admin session tokens.
const AdminIssuer = "nakliyeci-admin"

// AdminClaims is the payload of an admin session token.
type AdminClaims struct {
	Role     string `json:"role"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// IssueAdminToken signs an HS256 session token for admin valid for ttl.
func IssueAdminToken(secret string, admin models.AdminProfile, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	claims := AdminClaims{
		Role:     string(admin.Role),
		UserName: admin.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			Issuer:    AdminIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func bearerToken(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return "", false
	}
	parts := strings.Fields(raw)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// AdminSource loads the stored state of an admin account.
type AdminSource interface {
	Get(ctx context.Context, id string) (models.AdminProfile, error)
}

// AuthGuard validates an admin session token on every request, reloads the
// account from admins and, when allowedRoles is not empty, requires the
// stored role to be one of them. Claims in the context carry the stored
// role and user name.
func AuthGuard(secret string, admins AdminSource, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Oturum bulunamadı.")
			return
		}

		claims := &AdminClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuer(AdminIssuer),
		)
		if err != nil || !token.Valid {
			zap.L().Debug("admin token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			abort(c, http.StatusUnauthorized, "Oturum geçersiz veya süresi dolmuş.")
			return
		}

		admin, err := admins.Get(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "Oturum geçersiz veya süresi dolmuş.")
				return
			}
			zap.L().Error("admin lookup failed", zap.String("adminId", claims.Subject), zap.Error(err))
			abort(c, http.StatusServiceUnavailable, "Oturum doğrulanamadı, lütfen tekrar deneyin.")
			return
		}
		if !admin.IsActive {
			zap.L().Info("inactive admin rejected", zap.String("adminId", admin.ID))
			abort(c, http.StatusUnauthorized, "Hesabınız pasif durumda.")
			return
		}
		claims.Role = string(admin.Role)
		claims.UserName = admin.UserName

		if len(allowedRoles) > 0 {
			match := false
			for _, r := range allowedRoles {
				if claims.Role == r {
					match = true
					break
				}
			}
			if !match {
				abort(c, http.StatusForbidden, "Bu işlem için yetkiniz yok.")
				return
			}
		}

		c.Set("claims", claims)
		c.Set("adminId", claims.Subject)
		c.Next()
	}
}

func AdminAuth(secret string, admins AdminSource) gin.HandlerFunc {
	return AuthGuard(secret, admins, string(models.AdminRoleAdmin), string(models.AdminRoleSuperAdmin))
}

func SuperAdminAuth(secret string, admins AdminSource) gin.HandlerFunc {
	return AuthGuard(secret, admins, string(models.AdminRoleSuperAdmin))
}

// AdminFromContext returns the claims set by AuthGuard.
func AdminFromContext(c *gin.Context) (*AdminClaims, bool) {
	v, ok := c.Get("claims")
	if !ok {
		return nil, false
	}
	claims, ok := v.(*AdminClaims)
	return claims, ok
}
