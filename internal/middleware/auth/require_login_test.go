package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/rampurgold/storefront/internal/session"
)

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	e := echo.New()
	store := session.NewMemoryStore()

	handler := RequireLogin(store)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireLoginPassesSession(t *testing.T) {
	e := echo.New()
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), "sid-1", 9))

	var seen uint
	handler := RequireLogin(store)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(9), seen)
}

func TestRequireLoginUnknownSession(t *testing.T) {
	e := echo.New()
	store := session.NewMemoryStore()

	handler := RequireLogin(store)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	require.Equal(t, http.StatusFound, rec.Code)
}
