package handler

import (
	"net/http"

	"github.com/msomdec/bazaar/internal/service"
)

// FavoriteHandler handles saved-items HTTP requests.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// HandleToggle flips the saved state of a listing. The service enforces the
// auth requirement so the 401 carries the prompt the UI shows.
// POST /api/favorites/{category}/{id}/toggle
// Response: {"saved": true|false}
func (h *FavoriteHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	category, ok := pathCategory(w, r)
	if !ok {
		return
	}

	saved, err := h.favorites.Toggle(r.Context(), category, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": saved})
}

// HandleList returns the whole ledger, newest first.
// GET /api/favorites
// Response: {"favorites": [...]}
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.favorites.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": toFavoriteDTOs(entries)})
}
