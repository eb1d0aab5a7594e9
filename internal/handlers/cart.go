package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/events"
	"github.com/rampurgold/storefront/internal/logging"
	authmw "github.com/rampurgold/storefront/internal/middleware/auth"
	"github.com/rampurgold/storefront/internal/session"
)

type CartHandler struct {
	Carts    *cart.Service
	Sessions session.Store
	Producer *events.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func productIDParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", c.Param("productId"))
	}
	return uint(id), nil
}

// AddToCart is the one cart mutation without the redirect gate: it is called
// from the products page via fetch and answers with a structured body, 401
// when the browser has no session.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID := session.UserID(c, h.Sessions)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Please login first"})
	}

	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid product"})
	}

	if err := h.Carts.AddItem(c.Request().Context(), userID, productID); err != nil {
		if errors.Is(err, cart.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Please login first"})
		}
		logging.FromContext(c.Request().Context()).Error("add to cart failed", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Something went wrong"})
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// CartPage renders the cart with its total. The route sits behind
// RequireLogin, so the user id is always present here.
func (h *CartHandler) CartPage(c echo.Context) error {
	userID := authmw.CurrentUser(c)
	view := h.Carts.View(c.Request().Context(), userID)

	return c.Render(http.StatusOK, "cart.html", pageData(c, h.Sessions, h.Carts, echo.Map{
		"Cart":       view,
		"TotalPrice": view.Total,
	}))
}

func (h *CartHandler) Increase(c echo.Context) error {
	userID := authmw.CurrentUser(c)
	productID, err := productIDParam(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid product")
	}

	if err := h.Carts.Increase(c.Request().Context(), userID, productID); err != nil {
		logging.FromContext(c.Request().Context()).Error("increase failed", "user_id", userID, "error", err)
		return c.String(http.StatusInternalServerError, "Error increasing quantity")
	}
	return c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) Decrease(c echo.Context) error {
	userID := authmw.CurrentUser(c)
	productID, err := productIDParam(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid product")
	}

	if err := h.Carts.Decrease(c.Request().Context(), userID, productID); err != nil {
		logging.FromContext(c.Request().Context()).Error("decrease failed", "user_id", userID, "error", err)
		return c.String(http.StatusInternalServerError, "Error decreasing quantity")
	}
	return c.Redirect(http.StatusFound, "/cart")
}

func (h *CartHandler) Remove(c echo.Context) error {
	userID := authmw.CurrentUser(c)
	productID, err := productIDParam(c)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid product")
	}

	if err := h.Carts.Remove(c.Request().Context(), userID, productID); err != nil {
		logging.FromContext(c.Request().Context()).Error("remove failed", "user_id", userID, "error", err)
		return c.String(http.StatusInternalServerError, "Error removing item")
	}
	return c.Redirect(http.StatusFound, "/cart")
}

// Checkout is reachable without a session; an anonymous visitor just sees an
// empty cart.
func (h *CartHandler) Checkout(c echo.Context) error {
	userID := session.UserID(c, h.Sessions)
	view := h.Carts.View(c.Request().Context(), userID)

	return c.Render(http.StatusOK, "checkout.html", pageData(c, h.Sessions, h.Carts, echo.Map{
		"Cart": view,
	}))
}
