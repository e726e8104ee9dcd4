package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type TransferSponsorshipsRequest struct {
	FromCompanyID string `json:"fromCompanyId" binding:"required"`
	ToCompanyID   string `json:"toCompanyId" binding:"required"`
}

/*
GET /api/sponsors/:entityType/:entityName
- Ülke veya şehir sayfasında bugün gösterilecek sponsorlar
- Firma adına göre sıralı
*/
func ActiveSponsors(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/sponsors/:entityType/:entityName"
		defer handlePanic(c, route)

		name := strings.TrimSpace(c.Param("entityName"))
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "Sponsorluk hedefi zorunludur.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := sponsors.ActiveForEntity(ctx, models.EntityType(c.Param("entityType")), name, time.Now())
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func AdminListSponsors(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/sponsors"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			items []models.Sponsor
			err   error
		)
		if companyID := c.Query("companyId"); companyID != "" {
			items, err = sponsors.ByCompany(ctx, companyID)
		} else {
			items, err = sponsors.List(ctx)
		}
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func AdminGetSponsor(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/sponsors/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		sponsor, err := sponsors.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, sponsor)
	}
}

/*
POST /api/admin/sponsors/batch
- Bir firmaya birden fazla ülke/şehir sponsorluğu
- Zaten var olan hedefler atlanır, sayıları döner
*/
func AdminAddSponsorshipsBatch(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/sponsors/batch"
		defer handlePanic(c, route)

		var req store.SponsorshipBatch
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := sponsors.AddSponsorshipsBatch(ctx, req)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func AdminAddSponsor(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/sponsors"
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		sponsor, err := sponsors.AddSponsor(ctx, fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, sponsor)
	}
}

func AdminUpdateSponsor(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/sponsors/:id"
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := sponsors.Update(ctx, c.Param("id"), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Sponsorluk güncellendi.")
	}
}

func AdminDeleteSponsor(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/sponsors/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := sponsors.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Sponsorluk silindi.")
	}
}

func AdminToggleSponsor(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/admin/sponsors/:id/toggle"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := sponsors.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}

/*
POST /api/admin/sponsors/transfer
- Bir firmanın tüm sponsorlukları başka firmaya
- Hedefte zaten bulunanlar kaynaktan kaldırılır
*/
func AdminTransferSponsorships(sponsors *store.Sponsors) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/sponsors/transfer"
		defer handlePanic(c, route)

		var req TransferSponsorshipsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := sponsors.TransferSponsorships(ctx, req.FromCompanyID, req.ToCompanyID)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
