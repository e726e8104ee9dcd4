package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/config"
)

// offlineDB returns a database handle whose client never reaches a server.
func offlineDB(t *testing.T) *mongo.Database {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("offline")
}

func TestSetupRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{JWTSecret: "admin-secret", IdentitySecret: "identity-secret", AdminSessionTTL: time.Hour}

	var r *gin.Engine
	require.NotPanics(t, func() { r = setupRouter(offlineDB(t), cfg, zap.NewNop()) })

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /api/companies",
		"GET /api/listings/:id",
		"GET /api/sponsors/:entityType/:entityName",
		"GET /api/settings/cargo-types",
		"POST /api/me/listings",
		"POST /api/admin/login",
		"POST /api/admin/sponsors/batch",
		"POST /api/admin/contacts/:id/convert",
		"GET /api/admin/users/:id/notes",
		"POST /api/admin/membership-requests/:id/approve",
		"DELETE /api/admin/admins/:id",
		"PATCH /api/admin/users/:id/active",
		"PATCH /api/admin/listings/:id/active",
		"PATCH /api/admin/offers/:id/active",
		"PATCH /api/admin/admins/:id/active",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestProtectedRoutesRejectAnonymousCalls(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{JWTSecret: "admin-secret", IdentitySecret: "identity-secret", AdminSessionTTL: time.Hour}
	h := withCORS(setupRouter(offlineDB(t), cfg, zap.NewNop()), []string{"https://panel.example.com"})

	for _, target := range []string{"/api/me", "/api/admin/users", "/api/admin/admins"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{JWTSecret: "admin-secret", IdentitySecret: "identity-secret"}
	h := withCORS(setupRouter(offlineDB(t), cfg, zap.NewNop()), []string{"https://panel.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/listings", nil)
	req.Header.Set("Origin", "https://panel.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://panel.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
