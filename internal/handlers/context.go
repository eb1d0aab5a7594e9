package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/session"
)

// pageData builds the context every rendered page receives: whether the
// requester is logged in and how many items their cart holds. Handlers call
// it explicitly before rendering; there is no middleware mutating a shared
// object behind the scenes.
func pageData(c echo.Context, store session.Store, carts *cart.Service, extra echo.Map) echo.Map {
	userID := session.UserID(c, store)
	data := echo.Map{
		"IsLoggedIn":    userID != 0,
		"CartItemCount": carts.ItemCount(c.Request().Context(), userID),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
