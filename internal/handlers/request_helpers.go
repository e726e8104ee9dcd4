package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

const msgInternal = "Beklenmeyen bir hata oluştu. Lütfen tekrar deneyin."

var queryTimeout = 5 * time.Second

// SetQueryTimeout sets the deadline applied to every store call.
func SetQueryTimeout(d time.Duration) {
	if d > 0 {
		queryTimeout = d
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), queryTimeout)
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered", zap.String("route", route), zap.Any("panic", r), zap.Stack("stack"))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": msgInternal})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	zap.L().Info("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("message", message))
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// statusFor maps store error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondStoreError writes err in the uniform result shape. Store messages
// are passed through; anything else is logged and hidden.
func respondStoreError(c *gin.Context, route string, err error) {
	status := statusFor(err)
	msg := store.Message(err)
	switch {
	case msg != "":
	case status == http.StatusGatewayTimeout:
		msg = "İstek zaman aşımına uğradı."
	default:
		zap.L().Error("store call failed", zap.String("route", route), zap.Error(err))
		msg = msgInternal
	}
	respondWithError(c, status, route, msg)
}

func respondValidationError(c *gin.Context, route string, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s zorunludur", field))
			default:
				details = append(details, fmt.Sprintf("%s geçersiz", field))
			}
		}
		zap.L().Info("request validation failed", zap.String("route", route), zap.Strings("details", details))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Geçersiz istek.",
			"details": details,
		})
		return
	}

	respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// bindFields reads a JSON object body as a field map.
func bindFields(c *gin.Context) (bson.M, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		return nil, false
	}
	return bson.M(body), true
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

type activeBody struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func bindActive(c *gin.Context, route string) (bool, bool) {
	var body activeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondValidationError(c, route, err)
		return false, false
	}
	return *body.IsActive, true
}

// setActiveHandler serves PATCH .../:id/active with an explicit isActive.
func setActiveHandler(route string, set func(ctx context.Context, id string, active bool) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		active, ok := bindActive(c, route)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := set(ctx, c.Param("id"), active); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}
