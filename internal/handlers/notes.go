package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/models"
	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

// NoteRoutes serves the note endpoints of one parent kind. The parent id is
// read from the :id route parameter and the note id from :noteId.
type NoteRoutes struct {
	notes  *store.Notes
	parent models.NoteParentType
	prefix string
}

func NewNoteRoutes(notes *store.Notes, parent models.NoteParentType, prefix string) NoteRoutes {
	return NoteRoutes{notes: notes, parent: parent, prefix: prefix}
}

func (r NoteRoutes) parentOf(c *gin.Context) models.NoteParent {
	return models.NoteParent{Type: r.parent, ID: c.Param("id")}
}

func (r NoteRoutes) List() gin.HandlerFunc {
	route := "GET " + r.prefix + "/:id/notes"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		items, err := r.notes.List(ctx, r.parentOf(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, items)
	}
}

func (r NoteRoutes) Count() gin.HandlerFunc {
	route := "GET " + r.prefix + "/:id/notes/count"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		n, err := r.notes.Count(ctx, r.parentOf(c))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondOK(c, gin.H{"count": n})
	}
}

/*
POST .../:id/notes
- type: note | payment (varsayılan note)
- İçerik güvenli HTML olarak saklanır
*/
func (r NoteRoutes) Add() gin.HandlerFunc {
	route := "POST " + r.prefix + "/:id/notes"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		fields, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		note, err := r.notes.Add(ctx, r.parentOf(c), fields)
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondCreated(c, note)
	}
}

func (r NoteRoutes) Update() gin.HandlerFunc {
	route := "PATCH " + r.prefix + "/:id/notes/:noteId"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		patch, ok := bindFields(c)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz istek gövdesi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := r.notes.Update(ctx, r.parentOf(c), c.Param("noteId"), patch); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Not güncellendi.")
	}
}

func (r NoteRoutes) Delete() gin.HandlerFunc {
	route := "DELETE " + r.prefix + "/:id/notes/:noteId"
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := r.notes.Delete(ctx, r.parentOf(c), c.Param("noteId")); err != nil {
			respondStoreError(c, route, err)
			return
		}
		respondMessage(c, "Not silindi.")
	}
}

// Register mounts the note routes under g, which must already carry the
// parent prefix.
func (r NoteRoutes) Register(g gin.IRoutes) {
	g.GET("/:id/notes", r.List())
	g.GET("/:id/notes/count", r.Count())
	g.POST("/:id/notes", r.Add())
	g.PATCH("/:id/notes/:noteId", r.Update())
	g.DELETE("/:id/notes/:noteId", r.Delete())
}
