package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

// SettingRoutes serves one settings collection: a public list of active
// records and the admin CRUD endpoints.
type SettingRoutes[T models.Setting] struct {
	settings *store.Settings[T]
	path     string
}

func NewSettingRoutes[T models.Setting](settings *store.Settings[T], path string) SettingRoutes[T] {
	return SettingRoutes[T]{settings: settings, path: path}
}

func (r SettingRoutes[T]) list(route string, activeOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := r.settings.List(ctx, activeOnly || c.Query("active") == "true")
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func (r SettingRoutes[T]) get() gin.HandlerFunc {
	route := "GET /api/admin/settings/" + r.path + "/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := r.settings.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, item)
	}
}

func (r SettingRoutes[T]) add() gin.HandlerFunc {
	route := "POST /api/admin/settings/" + r.path
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		item, err := r.settings.Add(ctx, fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, item)
	}
}

func (r SettingRoutes[T]) update() gin.HandlerFunc {
	route := "PATCH /api/admin/settings/" + r.path + "/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := r.settings.Update(ctx, c.Param("id"), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Kayıt güncellendi.")
	}
}

func (r SettingRoutes[T]) delete() gin.HandlerFunc {
	route := "DELETE /api/admin/settings/" + r.path + "/:id"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := r.settings.Delete(ctx, c.Param("id")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Kayıt silindi.")
	}
}

func (r SettingRoutes[T]) toggle() gin.HandlerFunc {
	route := "PATCH /api/admin/settings/" + r.path + "/:id/toggle"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		active, err := r.settings.ToggleActive(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"isActive": active})
	}
}

// Register mounts GET /settings/<path> on public (active records only) and
// the full CRUD set on admin.
func (r SettingRoutes[T]) Register(public, admin gin.IRoutes) {
	p := "/settings/" + r.path
	public.GET(p, r.list("GET /api/settings/"+r.path, true))

	admin.GET(p, r.list("GET /api/admin/settings/"+r.path, false))
	admin.GET(p+"/:id", r.get())
	admin.POST(p, r.add())
	admin.PATCH(p+"/:id", r.update())
	admin.DELETE(p+"/:id", r.delete())
	admin.PATCH(p+"/:id/toggle", r.toggle())
}

// RegisterSettings mounts every settings collection of the catalog.
func RegisterSettings(catalog *store.SettingsCatalog, public, admin gin.IRoutes) {
	NewSettingRoutes(catalog.VehicleTypes, "vehicle-types").Register(public, admin)
	NewSettingRoutes(catalog.CargoTypes, "cargo-types").Register(public, admin)
	NewSettingRoutes(catalog.AuthDocs, "auth-docs").Register(public, admin)
	NewSettingRoutes(catalog.TransportTypes, "transport-types").Register(public, admin)
	NewSettingRoutes(catalog.Memberships, "memberships").Register(public, admin)
	NewSettingRoutes(catalog.Announcements, "announcements").Register(public, admin)
}
