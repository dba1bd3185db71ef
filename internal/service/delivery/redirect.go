package delivery

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RedirectStrategy appends the token to the frontend URL as ?token=.
// The frontend stores it and sends it back as a bearer token.
type RedirectStrategy struct {
	redirectURL *url.URL
}

func NewRedirectStrategy(redirectURL string) (*RedirectStrategy, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid FRONTEND_REDIRECT_SUCCESS %q: %w", redirectURL, err)
	}
	return &RedirectStrategy{redirectURL: u}, nil
}

func (s *RedirectStrategy) Deliver(w http.ResponseWriter, r *http.Request, token string, _ time.Time) {
	target := *s.redirectURL
	q := target.Query()
	q.Set("token", token)
	target.RawQuery = q.Encode()

	http.Redirect(w, r, target.String(), http.StatusSeeOther)
}

// Clear is a no-op: the frontend owns the token and forgets it on logout.
func (s *RedirectStrategy) Clear(http.ResponseWriter) {}
