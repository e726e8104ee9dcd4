package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestParsePageQuery(t *testing.T) {
	c, _ := testContext(http.MethodGet, "/api/companies?pageSize=5&cursor=abc&order=oldest&city=Ankara&other=1", "")

	q, err := parsePageQuery(c, "city", "country")
	require.NoError(t, err)
	assert.Equal(t, 5, q.PageSize)
	assert.Equal(t, "abc", q.Cursor)
	assert.Equal(t, store.SortAsc, q.Order)
	assert.Equal(t, map[string]string{"city": "Ankara"}, q.Filters)
}

func TestParsePageQueryAcceptsLimitAlias(t *testing.T) {
	c, _ := testContext(http.MethodGet, "/api/listings?limit=3&order=newest", "")

	q, err := parsePageQuery(c)
	require.NoError(t, err)
	assert.Equal(t, 3, q.PageSize)
	assert.Equal(t, store.SortDesc, q.Order)
}

func TestParsePageQueryRejectsBadInput(t *testing.T) {
	for _, target := range []string{
		"/x?pageSize=0",
		"/x?pageSize=abc",
		"/x?order=sideways",
	} {
		c, _ := testContext(http.MethodGet, target, "")
		_, err := parsePageQuery(c)
		assert.ErrorIs(t, err, errInvalidPaging, target)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&store.Error{Kind: store.ErrNotFound, Message: "yok"}, http.StatusNotFound},
		{&store.Error{Kind: store.ErrValidation, Message: "hatalı"}, http.StatusBadRequest},
		{&store.Error{Kind: store.ErrConflict, Message: "var"}, http.StatusConflict},
		{&store.Error{Kind: store.ErrInvalidCredentials, Message: "hatalı"}, http.StatusUnauthorized},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestRespondStoreErrorPassesStoreMessage(t *testing.T) {
	c, w := testContext(http.MethodGet, "/x", "")
	respondStoreError(c, "GET /x", &store.Error{Kind: store.ErrConflict, Message: "Bu kullanıcı adı zaten kullanılıyor."})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Bu kullanıcı adı zaten kullanılıyor.", body["message"])
}

func TestRespondStoreErrorHidesInternalErrors(t *testing.T) {
	c, w := testContext(http.MethodGet, "/x", "")
	respondStoreError(c, "GET /x", errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgInternal, decodeBody(t, w)["message"])
}

func TestRespondValidationErrorListsFields(t *testing.T) {
	c, w := testContext(http.MethodPost, "/x", `{"userName":"a"}`)
	var req AdminLoginRequest
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	respondValidationError(c, "POST /x", err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []interface{}{"password zorunludur"}, body["details"])
}

func TestBindFields(t *testing.T) {
	c, _ := testContext(http.MethodPost, "/x", `{"title":"Merhaba","count":2}`)
	fields, ok := bindFields(c)
	require.True(t, ok)
	assert.Equal(t, "Merhaba", fields["title"])

	c, _ = testContext(http.MethodPost, "/x", `[1,2]`)
	_, ok = bindFields(c)
	assert.False(t, ok)

	c, _ = testContext(http.MethodPost, "/x", `null`)
	_, ok = bindFields(c)
	assert.False(t, ok)
}

func TestRespondPage(t *testing.T) {
	next := "abc"
	c, w := testContext(http.MethodGet, "/x", "")
	respondPage(c, "GET /x", store.Page[string]{Items: []string{"a", "b"}, Cursor: &next})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{"a", "b"}, body["items"])
	assert.Equal(t, "abc", body["cursor"])
}

func TestRespondPageErrors(t *testing.T) {
	c, w := testContext(http.MethodGet, "/x", "")
	respondPage(c, "GET /x", store.Page[string]{Items: []string{}, Error: &store.QueryError{Message: "Geçersiz sayfa imleci.", BadRequest: true}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext(http.MethodGet, "/x", "")
	respondPage(c, "GET /x", store.Page[string]{Items: []string{}, Error: &store.QueryError{
		Message:   "Bu filtre ve sıralama için veritabanı indeksi gerekiyor.",
		IndexHint: "db.listings.createIndex({ postedAt: -1 })",
	}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []interface{}{}, body["items"])
	assert.Nil(t, body["cursor"])
	assert.Equal(t, "db.listings.createIndex({ postedAt: -1 })", body["error"].(map[string]interface{})["indexHint"])
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-04-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-04-09T10:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 9, 7, 30, 0, 0, time.UTC), d)

	_, err = parseDate("09.04.2024")
	assert.Error(t, err)
}

func TestHandlePanicReturnsInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		defer handlePanic(c, "GET /boom")
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, msgInternal, decodeBody(t, w)["message"])
}
