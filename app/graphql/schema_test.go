package graphql_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"waroengpos/app/graphql"
	"waroengpos/app/models"
	"waroengpos/app/services"
	"waroengpos/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close() //nolint:errcheck
		}
	})
	return db
}

func query(t *testing.T, body string) map[string]interface{} {
	t.Helper()

	schema, err := graphql.NewSchema(services.NewCatalogService())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	graphql.Handler(schema)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Data
}

func TestCategoriesQuery(t *testing.T) {
	db := setupDB(t)

	food := models.Category{Name: "Makanan"}
	require.NoError(t, db.Create(&food).Error)
	require.NoError(t, db.Create(&models.Product{
		Name: "Nasi Goreng", Price: 18000, CategoryID: food.ID,
	}).Error)

	data := query(t, `{"query":"{ categories { id name productCount } }"}`)

	categories, ok := data["categories"].([]interface{})
	require.True(t, ok, "categories missing: %v", data)
	require.Len(t, categories, 1)

	first := categories[0].(map[string]interface{})
	assert.Equal(t, "Makanan", first["name"])
	assert.EqualValues(t, 1, first["productCount"])
}

func TestProductsQueryCategoryFilter(t *testing.T) {
	db := setupDB(t)

	food := models.Category{Name: "Makanan"}
	drinks := models.Category{Name: "Minuman"}
	require.NoError(t, db.Create(&food).Error)
	require.NoError(t, db.Create(&drinks).Error)
	require.NoError(t, db.Create(&[]models.Product{
		{Name: "Nasi Goreng", Price: 18000, CategoryID: food.ID},
		{Name: "Es Teh", Price: 5000, CategoryID: drinks.ID},
	}).Error)

	data := query(t, `{"query":"{ products { name price } }"}`)
	products := data["products"].([]interface{})
	assert.Len(t, products, 2, "default argument lists every product")

	body := fmt.Sprintf(
		`{"query":"query($c: String) { products(categoryId: $c) { name } }","variables":{"c":"%d"}}`,
		food.ID)
	data = query(t, body)
	products = data["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "Nasi Goreng", products[0].(map[string]interface{})["name"])
}
