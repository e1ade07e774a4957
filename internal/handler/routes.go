package handler

import (
	"net/http"

	"github.com/msomdec/bazaar/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	accounts *service.AccountService,
	listings *service.ListingService,
	favorites *service.FavoriteService,
	authLimiter *service.AttemptLimiter,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(accounts, cookieSecure)
	listingHandler := NewListingHandler(listings)
	favoriteHandler := NewFavoriteHandler(favorites)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("POST /api/auth/register", RateLimit(authLimiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", RateLimit(authLimiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(accounts, http.HandlerFunc(authHandler.HandleMe)))

	mux.HandleFunc("GET /api/featured", listingHandler.HandleFeatured)
	mux.Handle("GET /api/my-listings", RequireAuth(accounts, http.HandlerFunc(listingHandler.HandleMine)))

	mux.HandleFunc("GET /api/listings/{category}", listingHandler.HandleList)
	mux.Handle("POST /api/listings/{category}", OptionalAuth(accounts, http.HandlerFunc(listingHandler.HandleCreate)))
	mux.HandleFunc("GET /api/listings/{category}/{id}", listingHandler.HandleGet)
	mux.Handle("DELETE /api/listings/{category}/{id}", RequireAuth(accounts, http.HandlerFunc(listingHandler.HandleDelete)))

	mux.HandleFunc("POST /api/favorites/{category}/{id}/toggle", favoriteHandler.HandleToggle)
	mux.HandleFunc("GET /api/favorites", favoriteHandler.HandleList)
}
