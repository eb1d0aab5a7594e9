package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/catalog"
	"github.com/rampurgold/storefront/internal/logging"
	"github.com/rampurgold/storefront/internal/search"
	"github.com/rampurgold/storefront/internal/session"
)

type CatalogHandler struct {
	Catalog  *catalog.Service
	Sessions session.Store
	Carts    *cart.Service
}

// Products serves both / and /products. The first hit on an empty store seeds
// the catalog.
func (h *CatalogHandler) Products(c echo.Context) error {
	products, err := h.Catalog.List(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("catalog list failed", "error", err)
		return c.String(http.StatusInternalServerError, "Something went wrong")
	}

	return c.Render(http.StatusOK, "products.html", pageData(c, h.Sessions, h.Carts, echo.Map{
		"Products": products,
	}))
}

type SearchHandler struct {
	Searcher *search.Service
	Sessions session.Store
	Carts    *cart.Service
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.Redirect(http.StatusFound, "/products")
	}

	products, err := h.Searcher.Search(c.Request().Context(), q)
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("search failed", "query", q, "error", err)
		return c.String(http.StatusInternalServerError, "Something went wrong")
	}

	return c.Render(http.StatusOK, "products.html", pageData(c, h.Sessions, h.Carts, echo.Map{
		"Products": products,
	}))
}
