package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type ConvertContactRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
}

/*
GET /api/admin/contacts
- city, country, category, active filtreleri
- En yeni önce, imleçli sayfalama
*/
func AdminListContacts(contacts *store.Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/contacts"
		defer handlePanic(c, route)

		q, err := parsePageQuery(c, "city", "country", "category", "active")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz sayfalama parametresi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		respondPage(c, route, contacts.List(ctx, q))
	}
}

func AdminGetContact(contacts *store.Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/contacts/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		contact, err := contacts.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, contact)
	}
}

func AdminCreateContact(contacts *store.Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/contacts"
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		contact, err := contacts.Create(ctx, fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, contact)
	}
}

func AdminUpdateContact(contacts *store.Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/contacts/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := contacts.Update(ctx, c.Param("id"), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Rehber kaydı güncellendi.")
	}
}

func AdminDeleteContact(contacts *store.Contacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/contacts/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := contacts.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Rehber kaydı silindi.")
	}
}

/*
POST /api/admin/contacts/:id/convert
- Rehber kaydının notları firmaya taşınır, kayıt silinir
- Yarıda kalan aktarım aynı istekle tamamlanır
*/
func AdminConvertContact(transfers *store.Transfers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/contacts/:id/convert"
		defer handlePanic(c, route)

		var req ConvertContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := transfers.ConvertContactToCompany(ctx, c.Param("id"), req.CompanyID)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
