package delivery

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylecast/wardrobe/internal/config"
)

func TestNewStrategy(t *testing.T) {
	t.Run("Cookie", func(t *testing.T) {
		s, err := NewStrategy(&config.Config{TokenDelivery: config.TokenDeliveryCookie})
		require.NoError(t, err)
		assert.IsType(t, &CookieStrategy{}, s)
	})

	t.Run("Redirect", func(t *testing.T) {
		s, err := NewStrategy(&config.Config{
			TokenDelivery:           config.TokenDeliveryRedirect,
			FrontendRedirectSuccess: "http://localhost:3000/login-success",
		})
		require.NoError(t, err)
		assert.IsType(t, &RedirectStrategy{}, s)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewStrategy(&config.Config{TokenDelivery: "carrier-pigeon"})
		assert.ErrorContains(t, err, "unknown token delivery")
	})
}

func TestCookieStrategy(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	t.Run("Production cookie is cross-site", func(t *testing.T) {
		s := NewCookieStrategy("https://app.example.com/login-success", ".example.com", true)
		rec := httptest.NewRecorder()
		s.Deliver(rec, httptest.NewRequest(http.MethodGet, "/auth/callback", nil), "tok", expires)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "https://app.example.com/login-success", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, CookieName, c.Name)
		assert.Equal(t, "tok", c.Value)
		assert.Equal(t, "example.com", c.Domain)
		assert.True(t, c.Secure)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	})

	t.Run("Development cookie is lax without domain", func(t *testing.T) {
		s := NewCookieStrategy("http://localhost:3000/login-success", ".example.com", false)
		rec := httptest.NewRecorder()
		s.Deliver(rec, httptest.NewRequest(http.MethodGet, "/auth/callback", nil), "tok", expires)

		c := rec.Result().Cookies()[0]
		assert.Empty(t, c.Domain)
		assert.False(t, c.Secure)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("Clear expires the cookie", func(t *testing.T) {
		s := NewCookieStrategy("http://localhost:3000", "", false)
		rec := httptest.NewRecorder()
		s.Clear(rec)

		c := rec.Result().Cookies()[0]
		assert.Equal(t, CookieName, c.Name)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	})
}

func TestRedirectStrategy(t *testing.T) {
	s, err := NewRedirectStrategy("http://localhost:3000/login-success?from=google")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Deliver(rec, httptest.NewRequest(http.MethodGet, "/auth/callback", nil), "a.b.c", time.Now())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login-success", loc.Path)
	assert.Equal(t, "a.b.c", loc.Query().Get("token"))
	assert.Equal(t, "google", loc.Query().Get("from"))
	assert.Empty(t, rec.Result().Cookies())
}
