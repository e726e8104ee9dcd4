package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/issever22/nakliyeciDunyasi-sub001/internal/store"
)

/*
GET /api/companies
- city, country, category, district filtreleri
- Firma adına göre (Türkçe sıralama) imleçli sayfalama
*/
func ListCompanies(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/companies"
		defer handlePanic(c, route)

		q, err := parsePageQuery(c, "city", "country", "category", "district")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Geçersiz sayfalama parametresi.")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		respondPage(c, route, users.ListCompanies(ctx, q))
	}
}

/*
GET /api/companies/:id
- Sadece aktif firma profilleri
*/
func GetCompany(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/companies/:id"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := users.Get(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, route, err)
			return
		}
		if _, ok := profile.Company(); !ok || !profile.IsActive {
			respondWithError(c, http.StatusNotFound, route, "Firma bulunamadı.")
			return
		}
		respondOK(c, profile)
	}
}
