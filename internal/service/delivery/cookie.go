package delivery

import (
	"net/http"
	"time"
)

// CookieStrategy sets the token as an HttpOnly cookie and redirects to the frontend.
// In production the cookie is cross-site: scoped to domain, Secure and SameSite=None.
type CookieStrategy struct {
	redirectURL string
	domain      string
	production  bool
}

func NewCookieStrategy(redirectURL, domain string, production bool) *CookieStrategy {
	return &CookieStrategy{
		redirectURL: redirectURL,
		domain:      domain,
		production:  production,
	}
}

func (s *CookieStrategy) Deliver(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	cookie := s.cookie(token)
	cookie.Expires = expiresAt
	cookie.MaxAge = int(time.Until(expiresAt).Seconds())
	http.SetCookie(w, cookie)

	http.Redirect(w, r, s.redirectURL, http.StatusSeeOther)
}

func (s *CookieStrategy) Clear(w http.ResponseWriter) {
	cookie := s.cookie("")
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func (s *CookieStrategy) cookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	if s.production {
		cookie.Domain = s.domain
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}
