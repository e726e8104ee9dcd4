package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

var listingFilters = []string{
	"freightType", "originCountry", "originCity",
	"destinationCountry", "destinationCity",
	"vehicleType", "cargoType", "userId", "continuous",
}

/*
GET /api/listings
- Aktif ilanlar, en yeni önce
- freightType, originCity, destinationCity ... filtreleri
*/
func ListListings(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/listings"
		defer handlePanic(c, route)

		q, err := parsePageQuery(c, listingFilters...)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz sayfalama parametresi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		respondPage(c, route, listings.List(ctx, q))
	}
}

func GetListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/listings/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		listing, err := listings.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		if !listing.IsActive {
			respondWithError(c, http.StatusNotFound, route, "İlan bulunamadı.")
			return
		}
		respondOK(c, listing)
	}
}

/*
GET /api/me/listings
- Oturumdaki kullanıcının tüm ilanları (pasifler dahil)
*/
func ListMyListings(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/me/listings"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := listings.ListByUser(ctx, middleware.UserID(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

/*
POST /api/me/listings
- Sahibi oturumdaki kullanıcı
- postedBy ve iletişim telefonu profilden doldurulur
*/
func CreateListing(listings *store.Listings, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/me/listings"
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
		listing, err := listings.Create(ctx, owner, fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, listing)
	}
}

func UpdateMyListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/me/listings/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := listings.Update(ctx, c.Param("id"), middleware.UserID(c), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "İlan güncellendi.")
	}
}

func DeleteMyListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/me/listings/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := listings.Delete(ctx, c.Param("id"), middleware.UserID(c)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "İlan silindi.")
	}
}

// AdminGetListing returns a listing whether or not it is active.
func AdminGetListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/listings/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		listing, err := listings.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, listing)
	}
}

func AdminListUserListings(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/users/:id/listings"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := listings.ListByUser(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

// AdminUpdateListing edits any listing; the owner check is skipped.
func AdminUpdateListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/listings/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := listings.Update(ctx, c.Param("id"), "", patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "İlan güncellendi.")
	}
}

func AdminDeleteListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/listings/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := listings.Delete(ctx, c.Param("id"), ""); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "İlan silindi.")
	}
}

func AdminSetListingActive(listings *store.Listings) gin.HandlerFunc {
	return setActiveHandler("PATCH /api/admin/listings/:id/active", listings.SetActive)
}

func AdminToggleListing(listings *store.Listings) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/listings/:id/toggle"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := listings.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}
