package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/bazaar/internal/service"
)

// AuthHandler handles account and session HTTP requests.
type AuthHandler struct {
	accounts     *service.AccountService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookieSecure: cookieSecure}
}

// HandleRegister processes a JSON sign-up request.
// POST /api/auth/register
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, token, err := h.accounts.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserDTO(user)})
}

// HandleLogin processes a JSON sign-in request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"session": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, token, err := h.accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"session": toSessionDTO(session)})
}

// HandleLogout clears the session record and the cookie. Idempotent.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.SignOut(r.Context()); err != nil {
		slog.Error("sign out", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieSecure,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the current session.
// GET /api/auth/me
// Response: {"session": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Not signed in.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": toSessionDTO(session)})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieSecure,
		MaxAge:   86400, // 24 hours, matches token expiry
	})
}
