package xendit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waroengpos/config"
	"waroengpos/pkg/apperr"
	poshttp "waroengpos/pkg/http"
	"waroengpos/pkg/testkit"
	"waroengpos/pkg/xendit"
)

const paymentRequestBody = `{
	"id": "pr-0193",
	"status": "PENDING",
	"payment_method": {
		"id": "pm-8841",
		"qr_code": {
			"channel_properties": {"qr_string": "00020101021226..."}
		}
	}
}`

func TestCreatePaymentRequest(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", config.XenditBaseURL()+"/payment_requests", 200, paymentRequestBody)
	poshttp.DefaultClient.Transport = mt
	defer poshttp.ResetTransport()

	pr, err := xendit.CreatePaymentRequest(11000, "order-42")
	require.NoError(t, err)

	assert.Equal(t, "pr-0193", pr.TransactionID)
	assert.Equal(t, "pm-8841", pr.PaymentMethodID)
	assert.Equal(t, "00020101021226...", pr.QRString)
	testkit.AssertMocksAllCalled(t, mt)
}

func TestCreatePaymentRequestGatewayRejection(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", config.XenditBaseURL()+"/payment_requests", 500, `{"error":"server error"}`)
	poshttp.DefaultClient.Transport = mt
	defer poshttp.ResetTransport()

	_, err := xendit.CreatePaymentRequest(11000, "order-42")
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindPaymentGateway, e.Kind)
}

func TestCreatePaymentRequestMissingQRString(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", config.XenditBaseURL()+"/payment_requests", 200, `{"id":"pr-1","payment_method":{"id":"pm-1"}}`)
	poshttp.DefaultClient.Transport = mt
	defer poshttp.ResetTransport()

	_, err := xendit.CreatePaymentRequest(11000, "order-42")
	require.Error(t, err)

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindPaymentGateway, e.Kind)
}

func TestSimulatePayment(t *testing.T) {
	mt := testkit.NewMockTransport().
		Stub("POST", config.XenditBaseURL()+"/payment_methods/pm-8841/payments/simulate", 200, `{}`)
	poshttp.DefaultClient.Transport = mt
	defer poshttp.ResetTransport()

	require.NoError(t, xendit.SimulatePayment("pm-8841", 11000))
	testkit.AssertMocksAllCalled(t, mt)
}
