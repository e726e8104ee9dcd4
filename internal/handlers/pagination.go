package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

var errInvalidPaging = errors.New("geçersiz sayfalama parametresi")

// parsePageQuery reads pageSize, cursor, order and the named filters from
// the query string. An empty pageSize leaves the store default in place.
func parsePageQuery(c *gin.Context, filterNames ...string) (store.Query, error) {
	q := store.Query{
		Cursor:  strings.TrimSpace(c.Query("cursor")),
		Filters: map[string]string{},
	}

	sizeStr := c.Query("pageSize")
	if sizeStr == "" {
		sizeStr = c.Query("limit")
	}
	if sizeStr != "" {
		n, err := strconv.Atoi(sizeStr)
		if err != nil || n < 1 {
			return store.Query{}, errInvalidPaging
		}
		q.PageSize = n
	}

	switch strings.ToLower(strings.TrimSpace(c.Query("order"))) {
	case "":
	case "asc", "oldest":
		q.Order = store.SortAsc
	case "desc", "newest":
		q.Order = store.SortDesc
	default:
		return store.Query{}, errInvalidPaging
	}

	for _, name := range filterNames {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			q.Filters[name] = v
		}
	}
	return q, nil
}

// respondPage writes a page. A failed query is reported with its message,
// index hint and link next to an empty item list.
func respondPage[T any](c *gin.Context, route string, page store.Page[T]) {
	if page.Error != nil {
		status := http.StatusInternalServerError
		if page.Error.BadRequest {
			status = http.StatusBadRequest
		}
		zap.L().Info("page query failed",
			zap.String("route", route),
			zap.String("message", page.Error.Message),
			zap.String("indexHint", page.Error.IndexHint))
		c.JSON(status, gin.H{
			"success": false,
			"message": page.Error.Message,
			"items":   page.Items,
			"cursor":  nil,
			"error":   page.Error,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": page.Items, "cursor": page.Cursor})
}
