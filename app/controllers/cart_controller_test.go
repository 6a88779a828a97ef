package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"waroengpos/app/controllers"
	"waroengpos/app/models"
	"waroengpos/pkg/cart"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/router"
	"waroengpos/pkg/session"
	"waroengpos/pkg/testkit"
)

func cartRouter(store *cart.Store) *router.Router {
	c := controllers.NewCartController(store)

	r := router.New()
	r.Use(session.Middleware)
	r.Get("/api/cart", "cart.show", ctx.Wrap(c.Show))
	r.Post("/api/cart/items", "cart.add", ctx.Wrap(c.AddItem))
	r.Delete("/api/cart/items/{productId}", "cart.remove", ctx.Wrap(c.RemoveItem))
	r.Delete("/api/cart", "cart.clear", ctx.Wrap(c.Clear))
	return r
}

// client replays the session cookie across requests, like a browser.
type client struct {
	r       *router.Router
	cookies []*http.Cookie
}

func (c *client) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c.r.Handler().ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func seedCartProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()

	category := models.Category{Name: "Minuman"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: "Es Teh", Price: 5000, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCartAddShowRemove(t *testing.T) {
	db := setupDB(t)
	product := seedCartProduct(t, db)

	c := &client{r: cartRouter(cart.NewStore(time.Hour))}
	id := strconv.Itoa(int(product.ID))

	// Quantity omitted: the line defaults to 1.
	rec := c.do(t, http.MethodPost, "/api/cart/items", `{"productId":`+id+`}`)
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var items []cart.Item
	decodeInto(t, env.Data, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Es Teh", items[0].Name)
	assert.Equal(t, int64(5000), items[0].Price)
	assert.Equal(t, 1, items[0].Quantity)

	// Adding the same product again accumulates on the existing line.
	rec = c.do(t, http.MethodPost, "/api/cart/items", `{"productId":`+id+`,"quantity":2}`)
	env = testkit.AssertStatus(t, rec, http.StatusOK)
	decodeInto(t, env.Data, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	rec = c.do(t, http.MethodGet, "/api/cart", "")
	env = testkit.AssertStatus(t, rec, http.StatusOK)
	decodeInto(t, env.Data, &items)
	require.Len(t, items, 1)

	rec = c.do(t, http.MethodDelete, "/api/cart/items/"+id, "")
	env = testkit.AssertStatus(t, rec, http.StatusOK)
	decodeInto(t, env.Data, &items)
	assert.Empty(t, items)
}

func TestCartAddUnknownProduct(t *testing.T) {
	setupDB(t)

	c := &client{r: cartRouter(cart.NewStore(time.Hour))}
	rec := c.do(t, http.MethodPost, "/api/cart/items", `{"productId":999}`)
	testkit.AssertStatus(t, rec, http.StatusNotFound)
}

func TestCartIsSessionScoped(t *testing.T) {
	db := setupDB(t)
	product := seedCartProduct(t, db)

	store := cart.NewStore(time.Hour)
	r := cartRouter(store)
	id := strconv.Itoa(int(product.ID))

	first := &client{r: r}
	first.do(t, http.MethodPost, "/api/cart/items", `{"productId":`+id+`}`)

	// A fresh client gets its own session and an empty cart.
	second := &client{r: r}
	rec := second.do(t, http.MethodGet, "/api/cart", "")
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var items []cart.Item
	decodeInto(t, env.Data, &items)
	assert.Empty(t, items)

	rec = first.do(t, http.MethodGet, "/api/cart", "")
	env = testkit.AssertStatus(t, rec, http.StatusOK)
	decodeInto(t, env.Data, &items)
	assert.Len(t, items, 1)
}

func TestCartClear(t *testing.T) {
	db := setupDB(t)
	product := seedCartProduct(t, db)

	c := &client{r: cartRouter(cart.NewStore(time.Hour))}
	id := strconv.Itoa(int(product.ID))

	c.do(t, http.MethodPost, "/api/cart/items", `{"productId":`+id+`}`)
	rec := c.do(t, http.MethodDelete, "/api/cart", "")
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var items []cart.Item
	decodeInto(t, env.Data, &items)
	assert.Empty(t, items)
}
