package test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// Relay is an in-memory stand-in for the Safe relay service. Responses are
// canned JSON bodies keyed by Safe address; request bodies are recorded.
type Relay struct {
	Server *httptest.Server

	mu          sync.Mutex
	safes       map[string]string
	estimate    string
	executed    string
	failures    map[string]int
	estimateReq []json.RawMessage
	postReq     []json.RawMessage
	requestIDs  []string
}

// WithTestRelay starts a Relay for the duration of closure. baseURL mirrors
// the public relay layout and already ends in /api.
func WithTestRelay(t *testing.T, closure func(r *Relay, baseURL string)) {
	t.Helper()

	r := NewTestRelay(t)
	closure(r, r.BaseURL())
}

// NewTestRelay starts a Relay that is shut down when t finishes.
func NewTestRelay(t *testing.T) *Relay {
	t.Helper()

	r := &Relay{
		safes:    make(map[string]string),
		failures: make(map[string]int),
		estimate: `{"safeTxGas":"0","baseGas":"0","gasPrice":"0","lastUsedNonce":null,"gasToken":null,"refundReceiver":null}`,
		executed: `{"transactionHash":"0x0000000000000000000000000000000000000000000000000000000000000000"}`,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api := e.Group("/api")
	api.GET("/v1/safes/:safe/", r.getSafe)
	api.POST("/v2/safes/:safe/transactions/estimate/", r.postEstimate)
	api.POST("/v1/safes/:safe/transactions/", r.postTransaction)

	r.Server = httptest.NewServer(e)
	t.Cleanup(r.Server.Close)

	return r
}

func (r *Relay) BaseURL() string {
	return r.Server.URL + "/api"
}

// SetSafe registers the GetSafe response body for safe.
func (r *Relay) SetSafe(safe string, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.safes[strings.ToLower(safe)] = body
}

// SetEstimate sets the body returned by every estimate request.
func (r *Relay) SetEstimate(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.estimate = body
}

// SetExecuted sets the body returned for posted transactions.
func (r *Relay) SetExecuted(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = body
}

// Fail makes every request to route ("safe", "estimate" or "post") answer
// with status.
func (r *Relay) Fail(route string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[route] = status
}

func (r *Relay) EstimateRequests() []json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]json.RawMessage(nil), r.estimateReq...)
}

func (r *Relay) PostedTransactions() []json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]json.RawMessage(nil), r.postReq...)
}

func (r *Relay) RequestIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requestIDs...)
}

func (r *Relay) getSafe(c echo.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requestIDs = append(r.requestIDs, c.Request().Header.Get("X-Request-ID"))

	if status, ok := r.failures["safe"]; ok {
		return c.String(status, `{"detail":"failure"}`)
	}

	body, ok := r.safes[strings.ToLower(c.Param("safe"))]
	if !ok {
		return c.String(http.StatusNotFound, `{"detail":"Not found."}`)
	}

	return c.JSONBlob(http.StatusOK, []byte(body))
}

func (r *Relay) postEstimate(c echo.Context) error {
	return r.record(c, "estimate", &r.estimateReq, http.StatusOK, func() string { return r.estimate })
}

func (r *Relay) postTransaction(c echo.Context) error {
	return r.record(c, "post", &r.postReq, http.StatusCreated, func() string { return r.executed })
}

func (r *Relay) record(c echo.Context, route string, into *[]json.RawMessage, status int, body func() string) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.requestIDs = append(r.requestIDs, c.Request().Header.Get("X-Request-ID"))
	*into = append(*into, json.RawMessage(payload))

	if failure, ok := r.failures[route]; ok {
		return c.String(failure, `{"exception":"failure"}`)
	}

	return c.JSONBlob(status, []byte(body()))
}
