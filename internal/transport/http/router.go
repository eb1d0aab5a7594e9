package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rampurgold/storefront/internal/handlers"
	authmw "github.com/rampurgold/storefront/internal/middleware/auth"
	"github.com/rampurgold/storefront/internal/session"
)

type Deps struct {
	Pages    *handlers.PagesHandler
	Auth     *handlers.AuthHandler
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Search   *handlers.SearchHandler
	Sessions session.Store
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static("/img", "public/img")

	e.GET("/login", d.Pages.Login)
	e.GET("/register", d.Pages.Register)
	e.GET("/about", d.Pages.About)
	e.GET("/gallery", d.Pages.Gallery)
	e.GET("/contact", d.Pages.Contact)
	e.GET("/product", d.Pages.Product)

	e.POST("/login", d.Auth.Login)
	e.POST("/register", d.Auth.Register)
	e.GET("/logout", d.Auth.Logout)

	e.GET("/", d.Catalog.Products)
	e.GET("/products", d.Catalog.Products)
	if d.Search != nil {
		e.GET("/search", d.Search.Search)
	}

	e.GET("/checkout", d.Cart.Checkout)
	e.POST("/add-to-cart/:productId", d.Cart.AddToCart)

	cart := e.Group("/cart", authmw.RequireLogin(d.Sessions))
	cart.GET("", d.Cart.CartPage)
	cart.POST("/increase/:productId", d.Cart.Increase)
	cart.POST("/decrease/:productId", d.Cart.Decrease)
	cart.POST("/remove/:productId", d.Cart.Remove)
}
