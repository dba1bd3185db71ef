package handler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/service/delivery"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	errorWriter
	authService  *service.AuthService
	userService  *service.UserService
	provider     service.IdentityProvider
	delivery     delivery.Strategy
	secureCookie bool
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService, provider service.IdentityProvider, strategy delivery.Strategy, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		errorWriter:  errorWriter{debug: cfg.Debug},
		authService:  authService,
		userService:  userService,
		provider:     provider,
		delivery:     strategy,
		secureCookie: cfg.IsProduction(),
	}
}

// Login redirects the user to the identity provider's consent screen
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Generate secure state token for CSRF protection
	state := generateOAuthState()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback: it verifies state, resolves the user and
// delivers a session token.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	state := query.Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		slog.Warn("oauth state validation failed", "error", err)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid OAuth state"})
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/auth",
		MaxAge: -1,
	})

	if providerErr := query.Get("error"); providerErr != "" {
		slog.Warn("oauth consent failed", "error", providerErr)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}

	code := query.Get("code")
	if code == "" {
		slog.Warn("oauth callback missing code")
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing authorization code"})
		return
	}

	identity, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("oauth exchange failed", "error", err)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}

	user, err := h.userService.AuthenticateOAuth(r.Context(), identity)
	if errors.Is(err, service.ErrInvalidIdentity) {
		slog.Warn("oauth identity rejected", "error", err)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication failed"})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, expiresAt, err := h.authService.IssueToken(user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slog.Info("user logged in with google oauth", "user_id", user.ID)
	h.delivery.Deliver(w, r, token, expiresAt)
}

// Verify answers 200 for any request that passed RequireBearer.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.delivery.Clear(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.ByID(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// generateOAuthState creates cryptographically secure random state token for OAuth CSRF protection
func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
