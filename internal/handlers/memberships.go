package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/normalize"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type DecisionRequest struct {
	Note string `json:"note"`
}

/*
GET /api/admin/membership-requests
- ?status=pending|approved|rejected
*/
func AdminListMembershipRequests(requests *store.MembershipRequests) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/membership-requests"
		defer handlePanic(c, route)

		status := models.MembershipRequestStatus(strings.TrimSpace(c.Query("status")))
		switch status {
		case "", models.RequestPending, models.RequestApproved, models.RequestRejected:
		default:
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz başvuru durumu.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := requests.List(ctx, status)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

/*
POST /api/admin/membership-requests/:id/approve
- Kullanıcının üyeliği paket süresi kadar aktif edilir
*/
func AdminApproveMembership(requests *store.MembershipRequests) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/membership-requests/:id/approve"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		end, err := requests.Approve(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"membershipEndDate": normalize.FormatTime(end)})
	}
}

func AdminRejectMembership(requests *store.MembershipRequests) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/membership-requests/:id/reject"
		defer handlePanic(c, route)

		var req DecisionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondValidationError(c, route, err)
				return
			}
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := requests.Reject(ctx, c.Param("id"), strings.TrimSpace(req.Note)); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Üyelik başvurusu reddedildi.")
	}
}
