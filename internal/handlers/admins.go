package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type AdminCreateRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type AdminRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

/*
GET /api/admin/admins
- Sadece süper yönetici
*/
func ListAdmins(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/admins"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := admins.List(ctx)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func CreateAdmin(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/admins"
		defer handlePanic(c, route)

		var req AdminCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		admin, err := admins.Add(ctx, req.UserName, req.Password, models.AdminRole(req.Role))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, admin)
	}
}

func UpdateAdminRole(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/admins/:id/role"
		defer handlePanic(c, route)

		var req AdminRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := admins.UpdateRole(ctx, c.Param("id"), models.AdminRole(req.Role)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Yönetici rolü güncellendi.")
	}
}

func ToggleAdmin(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/admins/:id/toggle"
		defer handlePanic(c, route)

		if isSelf(c) {
			respondWithError(c, http.StatusBadRequest, route, "Kendi hesabınızı pasif yapamazsınız.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := admins.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}

func SetAdminActive(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/admins/:id/active"
		defer handlePanic(c, route)

		active, ok := bindActive(c, route)
		if !ok {
			return
		}
		if !active && isSelf(c) {
			respondWithError(c, http.StatusBadRequest, route, "Kendi hesabınızı pasif yapamazsınız.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := admins.SetActive(ctx, c.Param("id"), active); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}

func DeleteAdmin(admins *store.Admins) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/admins/:id"
		defer handlePanic(c, route)

		if isSelf(c) {
			respondWithError(c, http.StatusBadRequest, route, "Kendi hesabınızı silemezsiniz.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := admins.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Yönetici silindi.")
	}
}

// isSelf reports whether the :id parameter is the calling admin.
func isSelf(c *gin.Context) bool {
	claims, ok := middleware.AdminFromContext(c)
	return ok && claims.Subject == c.Param("id")
}
