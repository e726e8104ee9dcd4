package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

type SendMessageRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

/*
POST /api/admin/messages
- Tek bir kullanıcıya mesaj
- Başlık düz metin, içerik güvenli HTML olarak saklanır
*/
func AdminSendMessage(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/messages"
		defer handlePanic(c, route)

		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, route, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		msg, err := messages.Send(ctx, req.UserID, req.Title, req.Content)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, msg)
	}
}

func AdminListMessages(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/messages"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			items interface{}
			err   error
		)
		if userID := c.Query("userId"); userID != "" {
			items, err = messages.ListByUser(ctx, userID)
		} else {
			items, err = messages.List(ctx)
		}
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func AdminDeleteMessage(messages *store.Messages) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/messages/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := messages.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Mesaj silindi.")
	}
}
