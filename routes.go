package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/config"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/handlers"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/middleware"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

func setupRouter(db *mongo.Database, cfg config.Config, log *zap.Logger) *gin.Engine {
	users := store.NewUsers(db)
	listings := store.NewListings(db)
	offers := store.NewOffers(db)
	contacts := store.NewContacts(db)
	sponsors := store.NewSponsors(db)
	messages := store.NewMessages(db)
	notes := store.NewNotes(db)
	transfers := store.NewTransfers(db)
	requests := store.NewMembershipRequests(db)
	admins := store.NewAdmins(db)
	settings := store.NewSettingsCatalog(db)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.GET("/health", handlers.Health(db))

	api := r.Group("/api")
	{
		api.GET("/companies", handlers.ListCompanies(users))
		api.GET("/companies/:id", handlers.GetCompany(users))
		api.GET("/listings", handlers.ListListings(listings))
		api.GET("/listings/:id", handlers.GetListing(listings))
		api.GET("/offers", handlers.ListOffers(offers))
		api.GET("/offers/:id", handlers.GetOffer(offers))
		api.GET("/sponsors/:entityType/:entityName", handlers.ActiveSponsors(sponsors))
	}

	me := api.Group("/me")
	me.Use(middleware.UserAuth(cfg.IdentitySecret))
	{
		me.GET("", handlers.GetMyProfile(users))
		me.POST("", handlers.CreateMyProfile(users))
		me.PATCH("", handlers.UpdateMyProfile(users))
		me.DELETE("", handlers.DeleteMyProfile(users))

		me.GET("/listings", handlers.ListMyListings(listings))
		me.POST("/listings", handlers.CreateListing(listings, users))
		me.PATCH("/listings/:id", handlers.UpdateMyListing(listings))
		me.DELETE("/listings/:id", handlers.DeleteMyListing(listings))

		me.GET("/offers", handlers.ListMyOffers(offers))
		me.POST("/offers", handlers.CreateOffer(offers, users))
		me.PATCH("/offers/:id", handlers.UpdateMyOffer(offers))
		me.DELETE("/offers/:id", handlers.DeleteMyOffer(offers))

		me.GET("/messages", handlers.ListMyMessages(messages))
		me.GET("/messages/unread-count", handlers.MyUnreadCount(messages))
		me.PATCH("/messages/:id/read", handlers.MarkMyMessageRead(messages))

		me.POST("/membership-requests", handlers.RequestMembership(requests))
	}

	api.POST("/admin/login", handlers.AdminLogin(admins, cfg.JWTSecret, cfg.AdminSessionTTL))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret, admins))
	{
		admin.GET("/me", handlers.AdminMe())

		admin.GET("/users", handlers.AdminListUsers(users))
		admin.GET("/users/:id", handlers.AdminGetUser(users))
		admin.PATCH("/users/:id", handlers.AdminUpdateUser(users))
		admin.DELETE("/users/:id", handlers.AdminDeleteUser(users))
		admin.PATCH("/users/:id/role", handlers.AdminUpdateUserRole(users))
		admin.PATCH("/users/:id/toggle", handlers.AdminToggleUser(users))
		admin.PATCH("/users/:id/active", handlers.AdminSetUserActive(users))
		admin.PATCH("/users/:id/membership", handlers.AdminUpdateMembership(users))
		admin.GET("/users/:id/listings", handlers.AdminListUserListings(listings))

		admin.GET("/listings/:id", handlers.AdminGetListing(listings))
		admin.PATCH("/listings/:id", handlers.AdminUpdateListing(listings))
		admin.DELETE("/listings/:id", handlers.AdminDeleteListing(listings))
		admin.PATCH("/listings/:id/toggle", handlers.AdminToggleListing(listings))
		admin.PATCH("/listings/:id/active", handlers.AdminSetListingActive(listings))

		admin.PATCH("/offers/:id", handlers.AdminUpdateOffer(offers))
		admin.DELETE("/offers/:id", handlers.AdminDeleteOffer(offers))
		admin.PATCH("/offers/:id/toggle", handlers.AdminToggleOffer(offers))
		admin.PATCH("/offers/:id/active", handlers.AdminSetOfferActive(offers))

		admin.GET("/sponsors", handlers.AdminListSponsors(sponsors))
		admin.GET("/sponsors/:id", handlers.AdminGetSponsor(sponsors))
		admin.POST("/sponsors", handlers.AdminAddSponsor(sponsors))
		admin.POST("/sponsors/batch", handlers.AdminAddSponsorshipsBatch(sponsors))
		admin.POST("/sponsors/transfer", handlers.AdminTransferSponsorships(sponsors))
		admin.PATCH("/sponsors/:id", handlers.AdminUpdateSponsor(sponsors))
		admin.DELETE("/sponsors/:id", handlers.AdminDeleteSponsor(sponsors))
		admin.PATCH("/sponsors/:id/toggle", handlers.AdminToggleSponsor(sponsors))

		admin.GET("/messages", handlers.AdminListMessages(messages))
		admin.POST("/messages", handlers.AdminSendMessage(messages))
		admin.DELETE("/messages/:id", handlers.AdminDeleteMessage(messages))

		admin.GET("/contacts", handlers.AdminListContacts(contacts))
		admin.GET("/contacts/:id", handlers.AdminGetContact(contacts))
		admin.POST("/contacts", handlers.AdminCreateContact(contacts))
		admin.PATCH("/contacts/:id", handlers.AdminUpdateContact(contacts))
		admin.DELETE("/contacts/:id", handlers.AdminDeleteContact(contacts))
		admin.POST("/contacts/:id/convert", handlers.AdminConvertContact(transfers))

		handlers.NewNoteRoutes(notes, models.NoteParentUser, "/api/admin/users").Register(admin.Group("/users"))
		handlers.NewNoteRoutes(notes, models.NoteParentContact, "/api/admin/contacts").Register(admin.Group("/contacts"))

		admin.GET("/membership-requests", handlers.AdminListMembershipRequests(requests))
		admin.POST("/membership-requests/:id/approve", handlers.AdminApproveMembership(requests))
		admin.POST("/membership-requests/:id/reject", handlers.AdminRejectMembership(requests))
	}
	handlers.RegisterSettings(settings, api, admin)

	superAdmins := api.Group("/admin/admins")
	superAdmins.Use(middleware.SuperAdminAuth(cfg.JWTSecret, admins))
	{
		superAdmins.GET("", handlers.ListAdmins(admins))
		superAdmins.POST("", handlers.CreateAdmin(admins))
		superAdmins.PATCH("/:id/role", handlers.UpdateAdminRole(admins))
		superAdmins.PATCH("/:id/toggle", handlers.ToggleAdmin(admins))
		superAdmins.PATCH("/:id/active", handlers.SetAdminActive(admins))
		superAdmins.DELETE("/:id", handlers.DeleteAdmin(admins))
	}

	return r
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(h)
}
