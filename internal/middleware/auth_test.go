package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type adminMap map[string]models.AdminProfile

func (m adminMap) Get(_ context.Context, id string) (models.AdminProfile, error) {
	a, ok := m[id]
	if !ok {
		return models.AdminProfile{}, &store.Error{Kind: store.ErrNotFound, Message: "admin yok"}
	}
	return a, nil
}

type brokenAdmins struct{}

func (brokenAdmins) Get(context.Context, string) (models.AdminProfile, error) {
	return models.AdminProfile{}, errors.New("connection reset")
}

func storedAdmin(role models.AdminRole, active bool) adminMap {
	return adminMap{"a1": {ID: "a1", UserName: "root", Role: role, IsActive: active}}
}

func guarded(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"adminId": c.GetString("adminId"), "userId": c.GetString("userId")})
	})
	return r
}

func call(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, role models.AdminRole, ttl time.Duration) string {
	t.Helper()
	tok, err := IssueAdminToken(testSecret, models.AdminProfile{ID: "a1", UserName: "root", Role: role}, ttl, time.Now())
	require.NoError(t, err)
	return tok
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	w := call(guarded(AdminAuth(testSecret, storedAdmin(models.AdminRoleAdmin, true))), adminToken(t, models.AdminRoleAdmin, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminId":"a1"`)
}

func TestAdminAuthRejections(t *testing.T) {
	r := guarded(AdminAuth(testSecret, storedAdmin(models.AdminRoleAdmin, true)))

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, adminToken(t, models.AdminRoleAdmin, -time.Minute)).Code, "expired")

	other, err := IssueAdminToken("other-secret", models.AdminProfile{ID: "a1", Role: models.AdminRoleAdmin}, time.Hour, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(r, other).Code, "wrong key")

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a1", Issuer: AdminIssuer},
	})
	signed, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(r, signed).Code, "expiry is required")

	wrongIss := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a1",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err = wrongIss.SignedString([]byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(r, signed).Code, "issuer")
}

func TestSuperAdminAuthRequiresRole(t *testing.T) {
	r := guarded(SuperAdminAuth(testSecret, storedAdmin(models.AdminRoleAdmin, true)))
	assert.Equal(t, http.StatusForbidden, call(r, adminToken(t, models.AdminRoleAdmin, time.Hour)).Code)

	r = guarded(SuperAdminAuth(testSecret, storedAdmin(models.AdminRoleSuperAdmin, true)))
	assert.Equal(t, http.StatusOK, call(r, adminToken(t, models.AdminRoleSuperAdmin, time.Hour)).Code)
}

func TestAdminGuardUsesStoredAccount(t *testing.T) {
	superToken := adminToken(t, models.AdminRoleSuperAdmin, time.Hour)

	demoted := guarded(SuperAdminAuth(testSecret, storedAdmin(models.AdminRoleAdmin, true)))
	assert.Equal(t, http.StatusForbidden, call(demoted, superToken).Code, "role comes from the account")

	inactive := guarded(AdminAuth(testSecret, storedAdmin(models.AdminRoleSuperAdmin, false)))
	w := call(inactive, superToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "pasif")

	deleted := guarded(AdminAuth(testSecret, adminMap{}))
	assert.Equal(t, http.StatusUnauthorized, call(deleted, superToken).Code)

	unreachable := guarded(AdminAuth(testSecret, brokenAdmins{}))
	assert.Equal(t, http.StatusServiceUnavailable, call(unreachable, superToken).Code)
}

func TestAdminGuardRefreshesClaims(t *testing.T) {
	r := gin.New()
	r.GET("/x", AdminAuth(testSecret, storedAdmin(models.AdminRoleAdmin, true)), func(c *gin.Context) {
		claims, ok := AdminFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})
	w := call(r, adminToken(t, models.AdminRoleSuperAdmin, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestUserAuthSetsSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "firebase-uid-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := call(guarded(UserAuth(testSecret)), signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"firebase-uid-42"`)
}

func TestUserAuthRequiresSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := call(guarded(UserAuth(testSecret)), signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestUserAuthRejectsAdminSession(t *testing.T) {
	w := call(guarded(UserAuth(testSecret)), adminToken(t, models.AdminRoleSuperAdmin, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), `"userId"`)
}
