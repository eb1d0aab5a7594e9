package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/session"
)

type PagesHandler struct {
	Sessions session.Store
	Carts    *cart.Service
}

func (h *PagesHandler) render(c echo.Context, name string) error {
	return c.Render(http.StatusOK, name, pageData(c, h.Sessions, h.Carts, nil))
}

func (h *PagesHandler) Login(c echo.Context) error { return h.render(c, "login.html") }

func (h *PagesHandler) Register(c echo.Context) error { return h.render(c, "register.html") }

func (h *PagesHandler) About(c echo.Context) error { return h.render(c, "about.html") }

func (h *PagesHandler) Gallery(c echo.Context) error { return h.render(c, "gallery.html") }

func (h *PagesHandler) Contact(c echo.Context) error { return h.render(c, "contact.html") }

func (h *PagesHandler) Product(c echo.Context) error { return h.render(c, "product.html") }
