package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper. It matches outgoing requests
// against registered stubs and returns synthetic responses instead of making
// real network calls.
//
// Install it on the shared client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("POST", gateway+"/payment_requests", 200, `{"id":"pr-1"}`)
//	posthttp.DefaultClient.Transport = mt
//	defer posthttp.ResetTransport()
type MockTransport struct {
	mu    sync.Mutex
	stubs []*stub
}

type stub struct {
	method    string
	urlPrefix string
	status    int
	body      string
	calls     int
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a synthetic response for requests whose method matches and
// whose URL starts with urlPrefix. Stubs are matched in registration order.
func (mt *MockTransport) Stub(method, urlPrefix string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{method: method, urlPrefix: urlPrefix, status: status, body: body})
	return mt
}

// RoundTrip intercepts the outgoing request. Unmatched requests fail the
// call so tests never hit the network by accident.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.method != "" && s.method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.String(), s.urlPrefix) {
			continue
		}

		s.calls++
		header := make(http.Header)
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: s.status,
			Status:     fmt.Sprintf("%d %s", s.status, http.StatusText(s.status)),
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(s.body)),
			Request:    req,
		}, nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s", req.Method, req.URL)
}

// Calls returns how many requests matched the stub at the given index.
func (mt *MockTransport) Calls(i int) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if i < 0 || i >= len(mt.stubs) {
		return 0
	}
	return mt.stubs[i].calls
}

// AssertAllCalled returns an error per stub that was never triggered.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, s := range mt.stubs {
		if s.calls == 0 {
			errs = append(errs, fmt.Errorf("testkit: stub %s %s was never called", s.method, s.urlPrefix))
		}
	}
	return errs
}
