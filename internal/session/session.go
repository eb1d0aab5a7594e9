package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session_id"
	TTL        = 30 * 24 * time.Hour
)

var ErrNotFound = errors.New("session not found")

// Store maps an opaque session id to the logged-in user id. Handlers receive
// it as a dependency; nothing reads it as ambient state.
type Store interface {
	Get(ctx context.Context, sid string) (uint, error)
	Set(ctx context.Context, sid string, userID uint) error
	Destroy(ctx context.Context, sid string) error
}

func NewCookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SID returns the request's session id, if any.
func SID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// EnsureSID returns the request's session id, creating one and setting the
// cookie when the browser has none yet.
func EnsureSID(c echo.Context) string {
	if sid, ok := SID(c); ok {
		return sid
	}
	sid := uuid.NewString()
	c.SetCookie(NewCookie(sid, time.Now().Add(TTL)))
	return sid
}

// UserID resolves the request to a user id via the store. Returns 0 when the
// request carries no session or the session is unknown.
func UserID(c echo.Context, store Store) uint {
	sid, ok := SID(c)
	if !ok {
		return 0
	}
	userID, err := store.Get(c.Request().Context(), sid)
	if err != nil {
		return 0
	}
	return userID
}
