// Package delivery hands a freshly minted session token to the browser.
package delivery

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stylecast/wardrobe/internal/config"
)

// CookieName is the cookie carrying the session token under cookie delivery.
const CookieName = "auth_token"

// Strategy delivers the session token at the end of the OAuth callback and
// revokes it on logout. Implementations finish the response.
type Strategy interface {
	Deliver(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time)
	Clear(w http.ResponseWriter)
}

// NewStrategy creates a delivery strategy based on configuration
func NewStrategy(cfg *config.Config) (Strategy, error) {
	mode := cfg.TokenDelivery

	slog.Info("initializing token delivery", "mode", mode)

	switch mode {
	case config.TokenDeliveryCookie:
		return NewCookieStrategy(cfg.FrontendRedirectSuccess, cfg.CookieDomain, cfg.IsProduction()), nil

	case config.TokenDeliveryRedirect:
		return NewRedirectStrategy(cfg.FrontendRedirectSuccess)

	default:
		return nil, fmt.Errorf("unknown token delivery: %s (supported: cookie, redirect)", mode)
	}
}
