package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/app/controllers"
	"waroengpos/app/models"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/testkit"
)

const callbackToken = "whsec-test-token"

func postWebhook(t *testing.T, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := ctx.Wrap(controllers.NewWebhookController().HandlePayment)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Callback-Token", token)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandlePaymentRejectsBadToken(t *testing.T) {
	setupDB(t)
	useCallbackToken(t)

	rec := postWebhook(t, "wrong-token", `{"event":"payment.succeeded","data":{"payment_request_id":"pr-1"}}`)
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)

	rec = postWebhook(t, "", `{"event":"payment.succeeded","data":{"payment_request_id":"pr-1"}}`)
	testkit.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestHandlePaymentIgnoresOtherEvents(t *testing.T) {
	setupDB(t)
	useCallbackToken(t)

	rec := postWebhook(t, callbackToken, `{"event":"payment.failed","data":{"payment_request_id":"pr-1"}}`)
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var data map[string]bool
	decodeInto(t, env.Data, &data)
	assert.False(t, data["applied"])
}

func TestHandlePaymentAppliesConfirmation(t *testing.T) {
	db := setupDB(t)
	useCallbackToken(t)

	order := models.Order{
		Subtotal: 10000, Tax: 1000, GrandTotal: 11000,
		Status:                models.StatusAwaitingPayment,
		ExternalTransactionID: "pr-0193",
	}
	require.NoError(t, db.Create(&order).Error)

	paidAt := time.Now().UTC().Format(time.RFC3339)
	body := `{"event":"payment.succeeded","data":{"payment_request_id":"pr-0193","status":"SUCCEEDED","paid_at":"` + paidAt + `"}}`

	rec := postWebhook(t, callbackToken, body)
	env := testkit.AssertStatus(t, rec, http.StatusOK)

	var data struct {
		Applied bool `json:"applied"`
		Order   struct {
			Status models.OrderStatus `json:"status"`
		} `json:"order"`
	}
	decodeInto(t, env.Data, &data)
	assert.True(t, data.Applied)
	assert.Equal(t, models.StatusProcessing, data.Order.Status)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusProcessing, stored.Status)
	require.NotNil(t, stored.PaidAt)

	// Replayed delivery: still a 200, but nothing is applied.
	rec = postWebhook(t, callbackToken, body)
	env = testkit.AssertStatus(t, rec, http.StatusOK)
	decodeInto(t, env.Data, &data)
	assert.False(t, data.Applied)
}

func TestHandlePaymentUnknownOrder(t *testing.T) {
	setupDB(t)
	useCallbackToken(t)

	rec := postWebhook(t, callbackToken, `{"event":"payment.succeeded","data":{"payment_request_id":"pr-ghost"}}`)
	testkit.AssertStatus(t, rec, http.StatusNotFound)
}

func TestHandlePaymentMissingPaymentRequestID(t *testing.T) {
	setupDB(t)
	useCallbackToken(t)

	rec := postWebhook(t, callbackToken, `{"event":"payment.succeeded","data":{}}`)
	testkit.AssertStatus(t, rec, http.StatusUnprocessableEntity)
}
