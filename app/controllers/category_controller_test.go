package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"waroengpos/app/controllers"
	"waroengpos/app/models"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/router"
	"waroengpos/pkg/testkit"
)

func categoryRouter() *router.Router {
	c := controllers.NewCategoryController()

	r := router.New()
	r.Get("/api/categories", "categories.index", ctx.Wrap(c.Index))
	r.Post("/api/categories", "categories.store", ctx.Wrap(c.Store))
	r.Put("/api/categories/{categoryId}", "categories.update", ctx.Wrap(c.Update))
	r.Delete("/api/categories/{categoryId}", "categories.destroy", ctx.Wrap(c.Destroy))
	return r
}

func doJSON(t *testing.T, r *router.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCategoryStoreAndIndex(t *testing.T) {
	db := setupDB(t)
	r := categoryRouter()

	rec := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"Minuman"}`)
	env := testkit.AssertStatus(t, rec, http.StatusCreated)

	var created struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	decodeInto(t, env.Data, &created)
	assert.Equal(t, "Minuman", created.Name)
	require.NotZero(t, created.ID)

	require.NoError(t, db.Create(&models.Product{
		Name: "Es Teh", Price: 5000, CategoryID: created.ID,
	}).Error)

	rec = doJSON(t, r, http.MethodGet, "/api/categories", "")
	env = testkit.AssertStatus(t, rec, http.StatusOK)

	var list []struct {
		Name         string `json:"name"`
		ProductCount int64  `json:"productCount"`
	}
	decodeInto(t, env.Data, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Minuman", list[0].Name)
	assert.Equal(t, int64(1), list[0].ProductCount)
}

func TestCategoryStoreValidation(t *testing.T) {
	setupDB(t)
	r := categoryRouter()

	// Too short.
	rec := doJSON(t, r, http.MethodPost, "/api/categories", `{"name":"ab"}`)
	env := testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
	assert.NotEmpty(t, env.Errors)

	// Missing entirely.
	rec = doJSON(t, r, http.MethodPost, "/api/categories", `{}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)

	// Malformed JSON.
	rec = doJSON(t, r, http.MethodPost, "/api/categories", `{"name":`)
	testkit.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestCategoryUpdate(t *testing.T) {
	db := setupDB(t)
	r := categoryRouter()

	category := models.Category{Name: "Mknn"}
	require.NoError(t, db.Create(&category).Error)

	id := strconv.Itoa(int(category.ID))
	rec := doJSON(t, r, http.MethodPut, "/api/categories/"+id, `{"name":"Makanan"}`)
	testkit.AssertStatus(t, rec, http.StatusOK)

	var stored models.Category
	require.NoError(t, db.First(&stored, category.ID).Error)
	assert.Equal(t, "Makanan", stored.Name)

	rec = doJSON(t, r, http.MethodPut, "/api/categories/9999", `{"name":"Makanan"}`)
	testkit.AssertStatus(t, rec, http.StatusNotFound)
}

func TestCategoryDestroy(t *testing.T) {
	db := setupDB(t)
	r := categoryRouter()

	category := models.Category{Name: "Makanan"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{Name: "Nasi Goreng", Price: 18000, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)

	id := strconv.Itoa(int(category.ID))

	// Referenced categories are protected.
	rec := doJSON(t, r, http.MethodDelete, "/api/categories/"+id, "")
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)

	require.NoError(t, db.Unscoped().Delete(&product).Error)

	rec = doJSON(t, r, http.MethodDelete, "/api/categories/"+id, "")
	testkit.AssertStatus(t, rec, http.StatusOK)

	err := db.First(&models.Category{}, category.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
