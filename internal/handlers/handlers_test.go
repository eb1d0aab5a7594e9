package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rampurgold/storefront/internal/cart"
	"github.com/rampurgold/storefront/internal/catalog"
	"github.com/rampurgold/storefront/internal/models"
	"github.com/rampurgold/storefront/internal/render"
	"github.com/rampurgold/storefront/internal/session"
)

type testEnv struct {
	E        *echo.Echo
	DB       *gorm.DB
	Sessions *session.MemoryStore
	Carts    *cart.Service
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	renderer, err := render.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	return &testEnv{
		E:        e,
		DB:       db,
		Sessions: session.NewMemoryStore(),
		Carts:    &cart.Service{DB: db},
	}
}

func (env *testEnv) formRequest(method, target string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// loginAs registers a session for the user and returns the matching cookie.
func (env *testEnv) loginAs(t *testing.T, userID uint) *http.Cookie {
	sid := "test-session"
	require.NoError(t, env.Sessions.Set(t.Context(), sid, userID))
	return &http.Cookie{Name: session.CookieName, Value: sid, Path: "/"}
}

func TestLoginValidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.DB.Create(&models.User{Username: "chai_lover", Password: "secret"})

	h := &AuthHandler{DB: env.DB, Sessions: env.Sessions, Carts: env.Carts}

	form := url.Values{"username": {"chai_lover"}, "password": {"secret"}}
	rec, c := env.formRequest(http.MethodPost, "/login", form)

	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/products", rec.Header().Get("Location"))

	var sid string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			sid = ck.Value
		}
	}
	require.NotEmpty(t, sid)

	userID, err := env.Sessions.Get(t.Context(), sid)
	require.NoError(t, err)
	require.Equal(t, uint(1), userID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.DB.Create(&models.User{Username: "chai_lover", Password: "secret"})

	h := &AuthHandler{DB: env.DB, Sessions: env.Sessions, Carts: env.Carts}

	form := url.Values{"username": {"chai_lover"}, "password": {"wrong"}}
	rec, c := env.formRequest(http.MethodPost, "/login", form)

	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Invalid credentials", rec.Body.String())
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	h := &AuthHandler{DB: env.DB, Sessions: env.Sessions, Carts: env.Carts}

	form := url.Values{"username": {"new_user"}, "password": {"pw"}}
	rec, c := env.formRequest(http.MethodPost, "/register", form)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "new_user").First(&user).Error)
	require.Equal(t, "pw", user.Password)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.DB.Create(&models.User{Username: "taken", Password: "pw"})

	h := &AuthHandler{DB: env.DB, Sessions: env.Sessions, Carts: env.Carts}

	form := url.Values{"username": {"taken"}, "password": {"other"}}
	rec, c := env.formRequest(http.MethodPost, "/register", form)

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv(t)
	ck := env.loginAs(t, 1)

	h := &AuthHandler{DB: env.DB, Sessions: env.Sessions, Carts: env.Carts}

	rec, c := env.formRequest(http.MethodGet, "/logout", nil, ck)
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	_, err := env.Sessions.Get(t.Context(), ck.Value)
	require.ErrorIs(t, err, session.ErrNotFound)

	var cleared bool
	for _, out := range rec.Result().Cookies() {
		if out.Name == session.CookieName && out.Value == "" {
			cleared = true
		}
	}
	require.True(t, cleared, "expected session cookie to be cleared")
}

func TestAddToCartUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Carts: env.Carts, Sessions: env.Sessions}

	rec, c := env.formRequest(http.MethodPost, "/add-to-cart/1", nil)
	c.SetParamNames("productId")
	c.SetParamValues("1")

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"success":false,"message":"Please login first"}`, rec.Body.String())

	var count int64
	require.NoError(t, env.DB.Model(&models.Cart{}).Count(&count).Error)
	require.Zero(t, count, "no cart may be created for an anonymous request")
}

func TestAddToCartAuthenticated(t *testing.T) {
	env := newTestEnv(t)
	env.DB.Create(&models.User{Username: "u", Password: "p"})
	product := models.Product{Name: "Rampur Gold Tea,250 g", Price: 100}
	env.DB.Create(&product)

	ck := env.loginAs(t, 1)
	h := &CartHandler{Carts: env.Carts, Sessions: env.Sessions}

	rec, c := env.formRequest(http.MethodPost, "/add-to-cart/1", nil, ck)
	c.SetParamNames("productId")
	c.SetParamValues("1")

	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())

	var item models.CartItem
	require.NoError(t, env.DB.Where("product_id = ?", product.ID).First(&item).Error)
	require.Equal(t, uint(1), item.Quantity)
}

func TestCartPageShowsTotal(t *testing.T) {
	env := newTestEnv(t)
	product := models.Product{Name: "Rampur Gold Tea,250 g", Price: 100}
	env.DB.Create(&product)

	require.NoError(t, env.Carts.AddItem(t.Context(), 1, product.ID))
	require.NoError(t, env.Carts.AddItem(t.Context(), 1, product.ID))

	ck := env.loginAs(t, 1)
	h := &CartHandler{Carts: env.Carts, Sessions: env.Sessions}

	rec, c := env.formRequest(http.MethodGet, "/cart", nil, ck)
	c.Set("userID", uint(1))

	require.NoError(t, h.CartPage(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Rampur Gold Tea,250 g")
	require.Contains(t, rec.Body.String(), "Total:")
	require.Contains(t, rec.Body.String(), "200")
}

func TestCheckoutWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	h := &CartHandler{Carts: env.Carts, Sessions: env.Sessions}

	rec, c := env.formRequest(http.MethodGet, "/checkout", nil)

	require.NoError(t, h.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Nothing to check out")
}

func TestMutationRedirectsToCart(t *testing.T) {
	env := newTestEnv(t)
	product := models.Product{Name: "tea", Price: 10}
	env.DB.Create(&product)
	require.NoError(t, env.Carts.AddItem(t.Context(), 1, product.ID))

	h := &CartHandler{Carts: env.Carts, Sessions: env.Sessions}

	rec, c := env.formRequest(http.MethodPost, "/cart/increase/1", nil)
	c.Set("userID", uint(1))
	c.SetParamNames("productId")
	c.SetParamValues("1")

	require.NoError(t, h.Increase(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/cart", rec.Header().Get("Location"))

	require.Equal(t, uint(2), env.Carts.ItemCount(t.Context(), 1))
}

func TestProductsPageSeedsAndRenders(t *testing.T) {
	env := newTestEnv(t)

	h := &CatalogHandler{
		Catalog:  &catalog.Service{DB: env.DB},
		Sessions: env.Sessions,
		Carts:    env.Carts,
	}

	rec, c := env.formRequest(http.MethodGet, "/products", nil)
	require.NoError(t, h.Products(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Rampur Gold Tea,1 Kg")
	require.Contains(t, rec.Body.String(), "Cart (0)")

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	require.Equal(t, int64(6), count)
}
