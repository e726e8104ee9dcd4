package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

var offerFilters = []string{
	"originCountry", "originCity", "destinationCountry", "destinationCity", "vehicleType", "userId",
}

/*
GET /api/offers
- Aktif nakliye teklifleri, en yeni önce
*/
func ListOffers(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/offers"
		defer handlePanic(c, route)

		q, err := parsePageQuery(c, offerFilters...)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz sayfalama parametresi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		respondPage(c, route, offers.List(ctx, q))
	}
}

func GetOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/offers/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		offer, err := offers.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		if !offer.IsActive {
			respondWithError(c, http.StatusNotFound, route, "Nakliye teklifi bulunamadı.")
			return
		}
		respondOK(c, offer)
	}
}

func ListMyOffers(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me/offers"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := offers.ListByUser(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

/*
POST /api/me/offers
- En az bir fiyat (TRY, USD, EUR) zorunlu
- companyName profilden doldurulur
*/
func CreateOffer(offers *store.Offers, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/me/offers"
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		owner, err := users.Get(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		offer, err := offers.Create(ctx, owner, fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, offer)
	}
}

func UpdateMyOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/me/offers/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := offers.Update(ctx, c.Param("id"), middleware.UserID(c), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Teklif güncellendi.")
	}
}

func DeleteMyOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/me/offers/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := offers.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Teklif silindi.")
	}
}

func AdminUpdateOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/offers/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := offers.Update(ctx, c.Param("id"), "", patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Teklif güncellendi.")
	}
}

func AdminDeleteOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/offers/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := offers.Delete(ctx, c.Param("id"), ""); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Teklif silindi.")
	}
}

func AdminSetOfferActive(offers *store.Offers) gin.HandlerFunc {
	return setActiveHandler("PATCH /api/admin/offers/:id/active", offers.SetActive)
}

func AdminToggleOffer(offers *store.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/offers/:id/toggle"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := offers.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}
