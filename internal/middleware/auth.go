package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stylecast/wardrobe/internal/ctxkeys"
	"github.com/stylecast/wardrobe/internal/logger"
	"github.com/stylecast/wardrobe/internal/model"
	"github.com/stylecast/wardrobe/internal/service"
)

// TokenVerifier verifies a session token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*model.Claims, error)
}

// RequireBearer ensures the request carries a valid "Authorization: Bearer" token
// and adds its claims to the context. The wrapped handler never runs otherwise.
func RequireBearer(verifier TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSONError(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
				writeJSONError(w, http.StatusUnauthorized, "Invalid Authorization Header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.FromContext(r.Context()).Debug("bearer token rejected", "error", err)
				if errors.Is(err, service.ErrTokenExpired) {
					writeJSONError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := ctxkeys.WithClaims(r.Context(), claims)
			next(w, r.WithContext(ctx))
		}
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
