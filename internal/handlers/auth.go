package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/events"
	"github.com/rampurgold/storefront/internal/logging"
	"github.com/rampurgold/storefront/internal/models"
	"github.com/rampurgold/storefront/internal/session"
)

type AuthHandler struct {
	DB       *gorm.DB
	Sessions session.Store
	Carts    *cart.Service
	Producer *events.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// Login compares credentials exactly as stored. Passwords are plaintext on
// both sides; see DESIGN.md open questions.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var user models.User
	err := h.DB.Where("username = ? AND password = ?", req.Username, req.Password).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.String(http.StatusOK, "Invalid credentials")
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("login lookup failed", "error", err)
		return c.String(http.StatusInternalServerError, "Something went wrong")
	}

	sid := session.EnsureSID(c)
	if err := h.Sessions.Set(c.Request().Context(), sid, user.ID); err != nil {
		logging.FromContext(c.Request().Context()).Error("session set failed", "error", err)
		return c.String(http.StatusInternalServerError, "Something went wrong")
	}

	h.publish(c, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.Redirect(http.StatusFound, "/products")
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	user := models.User{Username: req.Username, Password: req.Password}
	if err := h.DB.Create(&user).Error; err != nil {
		logging.FromContext(c.Request().Context()).Error("register failed", "username", req.Username, "error", err)
		return c.String(http.StatusInternalServerError, "Something went wrong")
	}

	h.publish(c, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if sid, ok := session.SID(c); ok {
		if err := h.Sessions.Destroy(c.Request().Context(), sid); err != nil {
			logging.FromContext(c.Request().Context()).Error("session destroy failed", "error", err)
			return c.String(http.StatusInternalServerError, "Logout failed!")
		}
	}

	c.SetCookie(session.NewCookie("", time.Now().Add(-1*time.Hour)))
	return c.Redirect(http.StatusFound, "/login")
}
