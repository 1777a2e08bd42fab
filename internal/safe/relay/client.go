// Package relay is a client for the Gnosis Safe relay service.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/safe/data"
	"github/chapool/safe-migrate/internal/util"
)

const (
	defaultTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20
)

// ErrUnexpectedStatus is wrapped by errors for responses outside [200, 400).
var ErrUnexpectedStatus = errors.New("unexpected relay response")

// Client talks to one relay instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.httpClient = &http.Client{Timeout: timeout}
	}
}

// NewClient returns a client for the relay rooted at baseURL, for example
// https://safe-relay.gnosis.io/api.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ForNetwork returns a client for the public relay of network.
func ForNetwork(network safe.Network, opts ...Option) *Client {
	return NewClient(network.RelayURL(), opts...)
}

// GetSafe fetches the owners, threshold, nonce and version of a Safe.
func (c *Client) GetSafe(ctx context.Context, safeAddress common.Address) (*data.SafeInfo, error) {
	var info data.SafeInfo
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/safes/%s/", safeAddress.Hex()), nil, &info); err != nil {
		return nil, errors.Wrap(err, "failed to get safe")
	}

	return &info, nil
}

// EstimateSafeTransaction asks the relay for gas parameters of a Safe
// transaction.
func (c *Client) EstimateSafeTransaction(ctx context.Context, params *data.EstimateParameters) (*data.Estimate, error) {
	var estimate data.Estimate
	if _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v2/safes/%s/transactions/estimate/", params.Safe.Hex()), params, &estimate); err != nil {
		return nil, errors.Wrap(err, "failed to estimate safe transaction")
	}

	return &estimate, nil
}

// PostTransaction submits a signed Safe transaction for execution.
func (c *Client) PostTransaction(ctx context.Context, signed *data.SignedTransaction) (*data.ExecutedTransaction, error) {
	var executed data.ExecutedTransaction
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/safes/%s/transactions/", signed.Safe.Hex()), signed, &executed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to post safe transaction")
	}
	executed.Raw = raw

	return &executed, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) (json.RawMessage, error) {
	requestID := uuid.New().String()
	log := util.LogFromContext(ctx).With().
		Str("component", "relay").
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Msg("Relay request failed")
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	log.Debug().
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Relay request completed")

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusBadRequest {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, errors.Wrap(err, "failed to decode response body")
	}

	return raw, nil
}
