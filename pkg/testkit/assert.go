// Package testkit holds the shared test helpers: an outbound HTTP mock
// transport and envelope assertions for controller tests.
package testkit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the JSON response envelope for decoding in tests.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// DecodeEnvelope parses a recorded response body into an Envelope.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"response body is not a valid envelope: %s", rec.Body.String())
	return env
}

// DecodeData unmarshals the envelope's data field into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	env := DecodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, dest),
		"envelope data does not match %T: %s", dest, string(env.Data))
}

// AssertStatus checks both the HTTP status code and the envelope's embedded
// status field, which must agree.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) Envelope {
	t.Helper()

	env := DecodeEnvelope(t, rec)
	assert.Equal(t, want, rec.Code)
	assert.Equal(t, want, env.Status)
	return env
}

// AssertMocksAllCalled fails the test if any registered stub never matched.
func AssertMocksAllCalled(t *testing.T, mt *MockTransport) {
	t.Helper()

	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err)
	}
}
