package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/msomdec/bazaar/internal/domain"
	"github.com/msomdec/bazaar/internal/service"
)

// ListingHandler handles listing HTTP requests.
type ListingHandler struct {
	listings *service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// HandleList returns the listings of one category, filtered and sorted.
// GET /api/listings/{category}?city=&propertyType=&make=&model=&maxPrice=&minBedrooms=&minBathrooms=&minYear=&q=&sort=
// Response: {"listings": [...]}
func (h *ListingHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}

	items, err := h.listings.ListAll(r.Context(), category)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	q := r.URL.Query()
	criteria := domain.FilterCriteria{
		City:         q.Get("city"),
		PropertyType: q.Get("propertyType"),
		Make:         q.Get("make"),
		Model:        q.Get("model"),
		MaxPrice:     intQuery(q, "maxPrice"),
		MinBedrooms:  intQuery(q, "minBedrooms"),
		MinBathrooms: intQuery(q, "minBathrooms"),
		MinYear:      intQuery(q, "minYear"),
		Query:        q.Get("q"),
	}

	results := service.Query(items, criteria, domain.SortKey(q.Get("sort")))
	writeJSON(w, http.StatusOK, map[string]any{"listings": toListingDTOs(results)})
}

// HandleGet returns one listing and counts the detail-page view.
// GET /api/listings/{category}/{id}
// Response: {"listing": {...}}
func (h *ListingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}

	listing, err := h.listings.IncrementViews(r.Context(), category, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listing": toListingDTO(*listing)})
}

// HandleCreate posts a new listing. Signed-in posters own the listing;
// anonymous posts are allowed and recorded as such.
// POST /api/listings/{category}
// Response: {"listing": {...}}
func (h *ListingHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}

	var req struct {
		Title        string `json:"title"`
		City         string `json:"city"`
		Price        int    `json:"price"`
		Description  string `json:"description"`
		Image        string `json:"image"`
		Phone        string `json:"phone"`
		Whatsapp     string `json:"whatsapp"`
		Featured     bool   `json:"featured"`
		PropertyType string `json:"propertyType"`
		Bedrooms     int    `json:"bedrooms"`
		Bathrooms    int    `json:"bathrooms"`
		AreaSqFt     int    `json:"areaSqFt"`
		Make         string `json:"make"`
		Model        string `json:"model"`
		Year         int    `json:"year"`
		Mileage      int    `json:"mileage"`
		FuelType     string `json:"fuelType"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	listing := domain.Listing{
		Category:        category,
		Title:           req.Title,
		City:            req.City,
		Price:           req.Price,
		Description:     req.Description,
		ImageRef:        req.Image,
		ContactPhone:    req.Phone,
		ContactWhatsapp: req.Whatsapp,
		Featured:        req.Featured,
	}
	switch category {
	case domain.CategoryHome:
		listing.PropertyType = req.PropertyType
		listing.Bedrooms = req.Bedrooms
		listing.Bathrooms = req.Bathrooms
		listing.AreaSqFt = req.AreaSqFt
	case domain.CategoryCar:
		listing.Make = req.Make
		listing.Model = req.Model
		listing.Year = req.Year
		listing.Mileage = req.Mileage
		listing.FuelType = req.FuelType
	}
	if session := SessionFromContext(r.Context()); session != nil {
		listing.OwnerEmail = session.Email
	}

	created, err := h.listings.Create(r.Context(), listing)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"listing": toListingDTO(*created)})
}

// HandleDelete removes a listing owned by the signed-in user.
// DELETE /api/listings/{category}/{id}
// Response: 204 No Content
func (h *ListingHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Sign in to do that.")
		return
	}

	if err := h.listings.Delete(r.Context(), category, r.PathValue("id"), session.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFeatured returns the curated landing-page listings.
// GET /api/featured
// Response: {"listings": [...]}
func (h *ListingHandler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	featured, err := h.listings.ListFeatured(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": toListingDTOs(featured)})
}

// HandleMine returns the signed-in user's listings.
// GET /api/my-listings
// Response: {"listings": [...]}
func (h *ListingHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Sign in to do that.")
		return
	}

	mine, err := h.listings.ListByOwner(r.Context(), session.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": toListingDTOs(mine)})
}

func pathCategory(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	category := domain.Category(r.PathValue("category"))
	if !category.Valid() {
		writeError(w, http.StatusNotFound, "Unknown listing category.")
		return "", false
	}
	return category, true
}

// intQuery parses an integer query parameter, treating absent or malformed
// values as "no constraint".
func intQuery(q url.Values, name string) int {
	v, err := strconv.Atoi(q.Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
