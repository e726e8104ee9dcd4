package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type MembershipRequestBody struct {
	MembershipID string `json:"membershipId" binding:"required"`
	Note         string `json:"note"`
}

/*
GET /api/me
- Oturumdaki kullanıcının profili
*/
func GetMyProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := users.Get(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, profile)
	}
}

/*
POST /api/me
- Kimlik sağlayıcıda kayıtlı kullanıcı için profil oluşturur
- role: individual | company
*/
func CreateMyProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/me"
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := users.Create(ctx, middleware.UserID(c), fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, profile)
	}
}

// UpdateMyProfile lets a user edit their own profile. Role, activation and
// membership fields are managed by admins.
func UpdateMyProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/me"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}
		for _, k := range []string{"role", "isActive", "membershipStatus", "membershipEndDate"} {
			delete(patch, k)
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.Update(ctx, middleware.UserID(c), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Profil güncellendi.")
	}
}

func DeleteMyProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/me"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := users.Delete(ctx, middleware.UserID(c)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Profil silindi.")
	}
}

func ListMyMessages(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me/messages"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := messages.ListByUser(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func MarkMyMessageRead(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/me/messages/:id/read"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := messages.MarkRead(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Mesaj okundu olarak işaretlendi.")
	}
}

func MyUnreadCount(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me/messages/unread-count"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		n, err := messages.UnreadCount(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"count": n})
	}
}

/*
POST /api/me/membership-requests
- Aktif bir üyelik paketi için başvuru
- Bekleyen başvuru varsa 409
*/
func RequestMembership(requests *store.MembershipRequests) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/me/membership-requests"
		defer handlePanic(c, route)

		var req MembershipRequestBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		created, err := requests.Create(ctx, middleware.UserID(c), req.MembershipID, req.Note)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, created)
	}
}
