// Package xendit is the payment gateway client. It creates one-time QRIS
// payment requests and, outside production, simulates payment completion.
//
// Calls are single-attempt with a bounded timeout: QR generation is not
// guaranteed idempotent, so retries belong to the operator, not this client.
package xendit

import (
	"encoding/base64"
	"fmt"
	"time"

	"waroengpos/config"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/http"
	"waroengpos/pkg/logger"
	"waroengpos/pkg/metrics"
)

const requestTimeout = 10 * time.Second

// PaymentRequest is the result of a created QR payment request.
type PaymentRequest struct {
	TransactionID   string
	PaymentMethodID string
	QRString        string
}

type paymentRequestBody struct {
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentMethod paymentMethod `json:"payment_method"`
	Metadata      metadata      `json:"metadata"`
}

type paymentMethod struct {
	Type        string `json:"type"`
	Reusability string `json:"reusability"`
	QRCode      qrCode `json:"qr_code"`
}

type qrCode struct {
	ChannelCode string `json:"channel_code,omitempty"`
}

type metadata struct {
	OrderReference string `json:"order_reference"`
}

type paymentRequestResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentMethod struct {
		ID     string `json:"id"`
		QRCode struct {
			ChannelProperties struct {
				QRString string `json:"qr_string"`
			} `json:"channel_properties"`
		} `json:"qr_code"`
	} `json:"payment_method"`
}

func basicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(config.XenditAPIKey()+":"))
}

// CreatePaymentRequest asks the gateway for a one-time QR code covering
// amount (minor units). orderRef ties the gateway transaction back to our
// order for reconciliation.
func CreatePaymentRequest(amount int64, orderRef string) (*PaymentRequest, error) {
	body := paymentRequestBody{
		Amount:   amount,
		Currency: "IDR",
		PaymentMethod: paymentMethod{
			Type:        "QR_CODE",
			Reusability: "ONE_TIME_USE",
			QRCode:      qrCode{},
		},
		Metadata: metadata{OrderReference: orderRef},
	}

	resp, err := http.Post(config.XenditBaseURL() + "/payment_requests").
		Header("Authorization", basicAuth()).
		Body(body).
		Timeout(requestTimeout).
		Send()
	if err != nil {
		metrics.PaymentRequests.WithLabelValues("error").Inc()
		return nil, apperr.PaymentGateway("payment request failed", err)
	}
	if !resp.OK() {
		metrics.PaymentRequests.WithLabelValues("rejected").Inc()
		logger.Error("xendit: payment request rejected",
			"status", resp.StatusCode, "body", resp.Text())
		return nil, apperr.PaymentGateway(
			fmt.Sprintf("payment request rejected with status %d", resp.StatusCode), nil)
	}

	var out paymentRequestResponse
	if err := resp.JSON(&out); err != nil {
		metrics.PaymentRequests.WithLabelValues("error").Inc()
		return nil, apperr.PaymentGateway("payment request returned malformed body", err)
	}

	qr := out.PaymentMethod.QRCode.ChannelProperties.QRString
	if out.ID == "" || out.PaymentMethod.ID == "" || qr == "" {
		metrics.PaymentRequests.WithLabelValues("error").Inc()
		return nil, apperr.PaymentGateway("payment request response missing fields", nil)
	}

	metrics.PaymentRequests.WithLabelValues("ok").Inc()
	return &PaymentRequest{
		TransactionID:   out.ID,
		PaymentMethodID: out.PaymentMethod.ID,
		QRString:        qr,
	}, nil
}

// SimulatePayment marks the payment method as paid on the gateway's sandbox.
// Never called in production.
func SimulatePayment(paymentMethodID string, amount int64) error {
	url := fmt.Sprintf("%s/payment_methods/%s/payments/simulate",
		config.XenditBaseURL(), paymentMethodID)

	resp, err := http.Post(url).
		Header("Authorization", basicAuth()).
		Body(map[string]int64{"amount": amount}).
		Timeout(requestTimeout).
		Send()
	if err != nil {
		return apperr.PaymentGateway("payment simulation failed", err)
	}
	if !resp.OK() {
		return apperr.PaymentGateway(
			fmt.Sprintf("payment simulation rejected with status %d", resp.StatusCode), nil)
	}
	return nil
}
