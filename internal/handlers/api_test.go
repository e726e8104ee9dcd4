package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/testutil"
)

const (
	testAdminSecret    = "admin-test-secret"
	testIdentitySecret = "identity-test-secret"
)

func testRouter(db *mongo.Database) *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := store.NewUsers(db)
	listings := store.NewListings(db)
	admins := store.NewAdmins(db)
	contacts := store.NewContacts(db)
	notes := store.NewNotes(db)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/companies", ListCompanies(users))
	api.GET("/companies/:id", GetCompany(users))
	api.GET("/listings", ListListings(listings))
	api.POST("/admin/login", AdminLogin(admins, testAdminSecret, time.Hour))

	me := api.Group("/me", middleware.UserAuth(testIdentitySecret))
	me.GET("", GetMyProfile(users))
	me.POST("", CreateMyProfile(users))
	me.POST("/listings", CreateListing(listings, users))
	me.DELETE("/listings/:id", DeleteMyListing(listings))

	admin := api.Group("/admin", middleware.AdminAuth(testAdminSecret, admins))
	admin.GET("/me", AdminMe())
	admin.POST("/contacts", AdminCreateContact(contacts))
	admin.PATCH("/listings/:id/active", AdminSetListingActive(listings))
	admin.PATCH("/users/:id/active", AdminSetUserActive(users))
	NewNoteRoutes(notes, models.NoteParentContact, "/api/admin/contacts").Register(admin.Group("/contacts"))
	RegisterSettings(store.NewSettingsCatalog(db), api, admin)
	return r
}

func userToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testIdentitySecret))
	require.NoError(t, err)
	return token
}

// adminToken stores an active admin in db and signs a session for it.
func adminToken(t *testing.T, db *mongo.Database) string {
	t.Helper()
	admin, err := store.NewAdmins(db).Add(context.Background(), "yonetici", "cok-gizli-sifre", models.AdminRoleAdmin)
	require.NoError(t, err)
	token, err := middleware.IssueAdminToken(testAdminSecret, admin, time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func do(r http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	_, err := store.NewAdmins(db).Add(ctx, "Yonetici", "cok-gizli-sifre", models.AdminRoleSuperAdmin)
	require.NoError(t, err)
	r := testRouter(db)

	w := do(r, http.MethodPost, "/api/admin/login", "", `{"userName":"yonetici","password":"cok-gizli-sifre"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, body["expiresAt"])
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = do(r, http.MethodGet, "/api/admin/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "yonetici", data["userName"])
	assert.Equal(t, "superAdmin", data["role"])
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, err := store.NewAdmins(db).Add(context.Background(), "yonetici", "cok-gizli-sifre", models.AdminRoleAdmin)
	require.NoError(t, err)
	r := testRouter(db)

	w := do(r, http.MethodPost, "/api/admin/login", "", `{"userName":"yonetici","password":"yanlis-sifre"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Kullanıcı adı veya şifre hatalı.", decodeBody(t, w)["message"])

	w = do(r, http.MethodPost, "/api/admin/login", "", `{"userName":"yonetici"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileAndListingLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)
	owner := userToken(t, "user-ayse")

	w := do(r, http.MethodPost, "/api/me", owner, `{"role":"individual","email":"ayse@example.com","firstName":"Ayşe","lastName":"Kaya","phone":"+905551112233"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/me", owner, `{"role":"individual","firstName":"Ayşe","lastName":"Kaya"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/me/listings", owner,
		`{"freightType":"Ticari","originCity":"Ankara","destinationCity":"İzmir","cargoType":"Tekstil"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	listing := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Ayşe Kaya", listing["postedBy"])
	assert.Equal(t, "+905551112233", listing["contactPhone"])
	id := listing["id"].(string)

	w = do(r, http.MethodGet, "/api/listings?originCity=Ankara", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].(map[string]interface{})["id"])

	w = do(r, http.MethodDelete, "/api/me/listings/"+id, userToken(t, "someone-else"), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/api/me/listings/"+id, owner, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRoutesRequireToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)

	w := do(r, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/admin/me", userToken(t, "user-1"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCompanyHidesIndividuals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	fx := testutil.NewFixtures(t, db)
	fx.CreateCompany(ctx, "co-1", "Çelik Nakliyat", "İstanbul")
	fx.CreateIndividual(ctx, "ind-1", "Mehmet", "Demir")
	r := testRouter(db)

	w := do(r, http.MethodGet, "/api/companies/co-1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Çelik Nakliyat", decodeBody(t, w)["data"].(map[string]interface{})["companyName"])

	w = do(r, http.MethodGet, "/api/companies/ind-1", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/companies?city=%C4%B0stanbul&cursor=bozuk!", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactNotesRoutes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)
	token := adminToken(t, db)

	w := do(r, http.MethodPost, "/api/admin/contacts", token, `{"companyName":"Anadolu Lojistik","city":"Konya"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	contactID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = do(r, http.MethodPost, "/api/admin/contacts/"+contactID+"/notes", token, `{"title":"İlk görüşme","content":"<b>Olumlu</b><script>x()</script>"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	note := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "note", note["type"])
	assert.NotContains(t, note["content"], "<script>")

	w = do(r, http.MethodGet, "/api/admin/contacts/"+contactID+"/notes/count", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["data"].(map[string]interface{})["count"])

	w = do(r, http.MethodPost, "/api/admin/contacts/missing/notes", token, `{"title":"x","content":"y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsPublicListShowsActiveOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)
	token := adminToken(t, db)

	w := do(r, http.MethodPost, "/api/admin/settings/vehicle-types", token, `{"name":"Tır"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/api/admin/settings/vehicle-types", token, `{"name":"Kamyonet"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = do(r, http.MethodPatch, "/api/admin/settings/vehicle-types/"+id+"/toggle", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/settings/vehicle-types", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = do(r, http.MethodGet, "/api/admin/settings/vehicle-types", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)

	w = do(r, http.MethodPost, "/api/admin/settings/vehicle-types", token, `{"name":"tır"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeactivatedAdminLosesSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)
	token := adminToken(t, db)

	w := do(r, http.MethodGet, "/api/admin/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	active, err := store.NewAdmins(db).ToggleActive(context.Background(), id)
	require.NoError(t, err)
	require.False(t, active)

	w = do(r, http.MethodGet, "/api/admin/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSetsActiveFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := testRouter(db)
	ctx := context.Background()
	token := adminToken(t, db)
	owner := userToken(t, "user-ayse")

	w := do(r, http.MethodPost, "/api/me", owner, `{"role":"individual","email":"ayse@example.com","firstName":"Ayşe","lastName":"Kaya"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/api/me/listings", owner,
		`{"freightType":"Ticari","originCity":"Ankara","destinationCity":"İzmir","cargoType":"Tekstil"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	// Setting the same value twice keeps it, unlike toggle.
	for i := 0; i < 2; i++ {
		w = do(r, http.MethodPatch, "/api/admin/listings/"+id+"/active", token, `{"isActive":false}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	listing, err := store.NewListings(db).Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, listing.IsActive)

	w = do(r, http.MethodPatch, "/api/admin/listings/"+id+"/active", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodPatch, "/api/admin/listings/missing/active", token, `{"isActive":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPatch, "/api/admin/users/user-ayse/active", token, `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	profile, err := store.NewUsers(db).Get(ctx, "user-ayse")
	require.NoError(t, err)
	assert.False(t, profile.IsActive)
}
