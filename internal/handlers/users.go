package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type UserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type MembershipUpdateRequest struct {
	Status  string `json:"membershipStatus" binding:"required"`
	EndDate string `json:"membershipEndDate"`
}

/*
GET /api/admin/users
- ?role=individual|company
- Pasif kullanıcılar dahil
*/
func AdminListUsers(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/users"
		defer handlePanic(c, route)

		var role models.Role
		if v := strings.TrimSpace(c.Query("role")); v != "" {
			r, err := models.ParseRole(v)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "Geçersiz rol. 'individual' veya 'company' olmalı.")
				return
			}
			role = r
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := users.List(ctx, role)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func AdminGetUser(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/users/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := users.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, profile)
	}
}

func AdminUpdateUser(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/users/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.Update(ctx, c.Param("id"), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Kullanıcı güncellendi.")
	}
}

func AdminDeleteUser(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/users/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Kullanıcı silindi.")
	}
}

func AdminUpdateUserRole(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/users/:id/role"
		defer handlePanic(c, route)

		var req UserRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.UpdateRole(ctx, c.Param("id"), models.Role(req.Role)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Kullanıcı rolü güncellendi.")
	}
}

func AdminToggleUser(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/users/:id/toggle"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := users.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}

func AdminSetUserActive(users *store.Users) gin.HandlerFunc {
	return setActiveHandler("PATCH /api/admin/users/:id/active", users.SetActive)
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

/*
PATCH /api/admin/users/:id/membership
- membershipStatus: active | pending | expired | none
- membershipEndDate boş ise tarih silinir
*/
func AdminUpdateMembership(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/users/:id/membership"
		defer handlePanic(c, route)

		var req MembershipUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		var end *time.Time
		if v := strings.TrimSpace(req.EndDate); v != "" {
			t, err := parseDate(v)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "Geçersiz bitiş tarihi.")
				return
			}
			end = &t
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.UpdateMembership(ctx, c.Param("id"), req.Status, end); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Üyelik bilgileri güncellendi.")
	}
}
