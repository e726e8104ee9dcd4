package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// UserAuth validates identity-provider tokens and injects the provider's
// user id (the sub claim) into the context as userId.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			zap.L().Debug("user token missing", zap.String("path", c.FullPath()))
			abort(c, http.StatusUnauthorized, "Oturum bulunamadı.")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			zap.L().Debug("user token rejected", zap.Error(err))
			abort(c, http.StatusUnauthorized, "Oturum geçersiz veya süresi dolmuş.")
			return
		}

		if iss, _ := token.Claims.GetIssuer(); iss == AdminIssuer {
			zap.L().Debug("admin token presented as user token")
			abort(c, http.StatusUnauthorized, "Oturum geçersiz veya süresi dolmuş.")
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || strings.TrimSpace(sub) == "" {
			zap.L().Debug("user token has no subject")
			abort(c, http.StatusUnauthorized, "Oturum geçersiz veya süresi dolmuş.")
			return
		}

		c.Set("userId", sub)
		c.Next()
	}
}

// UserID returns the id set by UserAuth.
func UserID(c *gin.Context) string {
	return c.GetString("userId")
}
