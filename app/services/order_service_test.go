package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"waroengpos/app/models"
	"waroengpos/app/repositories"
	"waroengpos/app/services"
	"waroengpos/config"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/database"
	poshttp "waroengpos/pkg/http"
	"waroengpos/pkg/testkit"
)

// setupDB swaps the global connection for a throwaway in-memory SQLite
// database scoped to one test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

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

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) models.Product {
	t.Helper()

	category := models.Category{Name: "Makanan"}
	require.NoError(t, db.Where("name = ?", category.Name).FirstOrCreate(&category).Error)

	product := models.Product{Name: name, Price: price, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)
	return product
}

const checkoutGatewayBody = `{
	"id": "pr-0193",
	"status": "PENDING",
	"payment_method": {
		"id": "pm-8841",
		"qr_code": {
			"channel_properties": {"qr_string": "00020101021226..."}
		}
	}
}`

func stubGateway(t *testing.T, status int, body string) *testkit.MockTransport {
	t.Helper()

	mt := testkit.NewMockTransport().
		Stub("POST", config.XenditBaseURL()+"/payment_requests", status, body)
	poshttp.DefaultClient.Transport = mt
	t.Cleanup(poshttp.ResetTransport)
	return mt
}

func TestCreateOrder(t *testing.T) {
	db := setupDB(t)
	nasi := seedProduct(t, db, "Nasi Goreng", 18000)
	mt := stubGateway(t, 200, checkoutGatewayBody)

	svc := services.NewOrderService()
	result, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: nasi.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(36000), result.Order.Subtotal)
	assert.Equal(t, int64(3600), result.Order.Tax)
	assert.Equal(t, int64(39600), result.Order.GrandTotal)
	assert.Equal(t, models.StatusAwaitingPayment, result.Order.Status)
	assert.Equal(t, "00020101021226...", result.QRString)
	assert.Equal(t, "pr-0193", result.Order.ExternalTransactionID)
	assert.Equal(t, "pm-8841", result.Order.PaymentMethodID)

	require.Len(t, result.Order.Items, 1)
	assert.Equal(t, nasi.ID, result.Order.Items[0].ProductID)
	assert.Equal(t, int64(18000), result.Order.Items[0].Price)
	assert.Equal(t, 2, result.Order.Items[0].Quantity)

	testkit.AssertMocksAllCalled(t, mt)
}

func TestCreateOrderPriceSnapshotSurvivesCatalogEdit(t *testing.T) {
	db := setupDB(t)
	nasi := seedProduct(t, db, "Nasi Goreng", 18000)
	stubGateway(t, 200, checkoutGatewayBody)

	svc := services.NewOrderService()
	result, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: nasi.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// Reprice the product after the checkout committed.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", nasi.ID).
		Update("price", 25000).Error)

	stored, err := repositories.NewOrderRepository().Find(result.Order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(18000), stored.Items[0].Price)
	assert.Equal(t, int64(19800), stored.GrandTotal)
}

func TestCreateOrderRejectsOverLimitWithoutPersisting(t *testing.T) {
	db := setupDB(t)
	caviar := seedProduct(t, db, "Caviar Platter", 9_500_000)
	stubGateway(t, 200, checkoutGatewayBody) // must never be hit

	svc := services.NewOrderService()
	_, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: caviar.ID, Quantity: 2},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	assert.Zero(t, n, "rejected checkout must not leave an order behind")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	setupDB(t)
	stubGateway(t, 200, checkoutGatewayBody)

	svc := services.NewOrderService()
	_, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: 999, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCreateOrderGatewayFailureLeavesOrderAwaiting(t *testing.T) {
	db := setupDB(t)
	nasi := seedProduct(t, db, "Nasi Goreng", 18000)
	stubGateway(t, 500, `{"error":"gateway down"}`)

	svc := services.NewOrderService()
	_, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: nasi.ID, Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindPaymentGateway))

	// The order committed before the gateway call; the stale sweep will
	// expire it later.
	var orders []models.Order
	require.NoError(t, db.Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusAwaitingPayment, orders[0].Status)
	assert.Empty(t, orders[0].ExternalTransactionID)
}

func TestHandlePaymentCallback(t *testing.T) {
	db := setupDB(t)
	nasi := seedProduct(t, db, "Nasi Goreng", 18000)
	stubGateway(t, 200, checkoutGatewayBody)

	svc := services.NewOrderService()
	result, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: nasi.ID, Quantity: 1},
	})
	require.NoError(t, err)

	paidAt := time.Now().Truncate(time.Second)
	order, applied, err := svc.HandlePaymentCallback("pr-0193", paidAt)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, result.Order.ID, order.ID)
	assert.Equal(t, models.StatusProcessing, order.Status)
	require.NotNil(t, order.PaidAt)

	// Replayed delivery: acknowledged, nothing changes.
	_, applied, err = svc.HandlePaymentCallback("pr-0193", paidAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repositories.NewOrderRepository().Find(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, stored.Status)
	require.NotNil(t, stored.PaidAt)
	assert.WithinDuration(t, paidAt, *stored.PaidAt, time.Second)
}

func TestHandlePaymentCallbackUnknownTransaction(t *testing.T) {
	setupDB(t)

	svc := services.NewOrderService()
	_, _, err := svc.HandlePaymentCallback("pr-nope", time.Now())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFinishOrder(t *testing.T) {
	db := setupDB(t)
	nasi := seedProduct(t, db, "Nasi Goreng", 18000)
	stubGateway(t, 200, checkoutGatewayBody)

	svc := services.NewOrderService()
	result, err := svc.CreateOrder([]services.CheckoutLine{
		{ProductID: nasi.ID, Quantity: 1},
	})
	require.NoError(t, err)
	orderID := result.Order.ID

	// Unpaid orders cannot be finished.
	_, err = svc.FinishOrder(orderID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnprocessable))
	assert.Contains(t, err.Error(), "not paid yet")

	_, applied, err := svc.HandlePaymentCallback("pr-0193", time.Now())
	require.NoError(t, err)
	require.True(t, applied)

	order, err := svc.FinishOrder(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, order.Status)

	// A second finish finds the order out of PROCESSING.
	_, err = svc.FinishOrder(orderID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnprocessable))
	assert.Contains(t, err.Error(), "not processing yet")

	stored, err := repositories.NewOrderRepository().Find(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, stored.Status)
}

func TestFinishOrderNotFound(t *testing.T) {
	setupDB(t)

	_, err := services.NewOrderService().FinishOrder(404)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGetOrdersStatusFilter(t *testing.T) {
	db := setupDB(t)

	for _, status := range []models.OrderStatus{
		models.StatusAwaitingPayment,
		models.StatusProcessing,
		models.StatusDone,
	} {
		require.NoError(t, db.Create(&models.Order{
			Subtotal: 1000, Tax: 100, GrandTotal: 1100, Status: status,
		}).Error)
	}

	svc := services.NewOrderService()

	all, err := svc.GetOrders(repositories.OrderStatusFilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	done, err := svc.GetOrders(string(models.StatusDone))
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, models.StatusDone, done[0].Status)

	_, err = svc.GetOrders("SHIPPED")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestExpireStaleOrders(t *testing.T) {
	db := setupDB(t)

	stale := models.Order{Subtotal: 1000, Tax: 100, GrandTotal: 1100, Status: models.StatusAwaitingPayment}
	require.NoError(t, db.Create(&stale).Error)
	fresh := models.Order{Subtotal: 2000, Tax: 200, GrandTotal: 2200, Status: models.StatusAwaitingPayment}
	require.NoError(t, db.Create(&fresh).Error)
	paidAt := time.Now().Add(-2 * time.Hour)
	paid := models.Order{Subtotal: 3000, Tax: 300, GrandTotal: 3300, Status: models.StatusProcessing, PaidAt: &paidAt}
	require.NoError(t, db.Create(&paid).Error)

	// Age the stale and paid orders past the payment TTL.
	old := time.Now().Add(-2 * config.OrderPaymentTTL())
	require.NoError(t, db.Model(&models.Order{}).
		Where("id IN ?", []uint{stale.ID, paid.ID}).
		Update("created_at", old).Error)

	services.NewOrderService().ExpireStaleOrders()

	var got models.Order
	require.NoError(t, db.First(&got, stale.ID).Error)
	assert.Equal(t, models.StatusExpired, got.Status)

	got = models.Order{}
	require.NoError(t, db.First(&got, fresh.ID).Error)
	assert.Equal(t, models.StatusAwaitingPayment, got.Status, "orders inside the TTL stay")

	got = models.Order{}
	require.NoError(t, db.First(&got, paid.ID).Error)
	assert.Equal(t, models.StatusProcessing, got.Status, "paid orders never expire")
}

func TestSimulatePaymentRequiresAttachedMethod(t *testing.T) {
	db := setupDB(t)

	order := models.Order{Subtotal: 1000, Tax: 100, GrandTotal: 1100, Status: models.StatusAwaitingPayment}
	require.NoError(t, db.Create(&order).Error)

	err := services.NewOrderService().SimulatePayment(order.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnprocessable))
}

func TestSalesReport(t *testing.T) {
	db := setupDB(t)

	now := time.Now()
	done := models.Order{Subtotal: 10000, Tax: 1000, GrandTotal: 11000, Status: models.StatusDone, PaidAt: &now}
	require.NoError(t, db.Create(&done).Error)
	processing := models.Order{Subtotal: 20000, Tax: 2000, GrandTotal: 22000, Status: models.StatusProcessing, PaidAt: &now}
	require.NoError(t, db.Create(&processing).Error)
	awaiting := models.Order{Subtotal: 5000, Tax: 500, GrandTotal: 5500, Status: models.StatusAwaitingPayment}
	require.NoError(t, db.Create(&awaiting).Error)

	summary, err := services.NewOrderService().SalesReport(now.Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(33000), summary.TotalRevenue, "only paid orders count as revenue")
	assert.Equal(t, int64(1), summary.CompletedOrders)
	assert.Equal(t, int64(2), summary.OngoingOrders)
}
