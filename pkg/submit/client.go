package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Envelope is the response body shared by every backend route.
type Envelope struct {
	OK   bool            `json:"ok"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Created is the decoded answer to an accepted solicitud.
type Created struct {
	Status  int
	Message string
	Data    json.RawMessage
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithContract replaces the embedded contract.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds each request when the http.Client is the default one.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client posts solicitudes to the backend.
type Client struct {
	baseURL  string
	http     *http.Client
	contract *Contract
	logger   *zap.Logger
	timeout  time.Duration
}

// New builds a client for the backend rooted at baseURL.
func New(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		logger:  zap.NewNop(),
		timeout: defaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.contract == nil {
		contract, err := DefaultContract(ctx)
		if err != nil {
			return nil, err
		}
		c.contract = contract
	}
	return c, nil
}

// Contract exposes the contract requests are checked against.
func (c *Client) Contract() *Contract {
	return c.contract
}

// Submit validates payload against the contract and posts it. A payload the
// contract rejects is never sent. A 400 envelope is returned as a
// *BackendError; statuses the contract does not declare wrap
// ErrUnexpectedStatus.
func (c *Client) Submit(ctx context.Context, payload Payload) (Created, error) {
	if err := c.contract.ValidateRequest(payload); err != nil {
		c.logger.Debug("payload rejected by contract", zap.Error(err))
		return Created{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Created{}, fmt.Errorf("submit: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.contract.Path(), bytes.NewReader(body))
	if err != nil {
		return Created{}, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Created{}, fmt.Errorf("submit: post solicitud: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Created{}, fmt.Errorf("submit: read response: %w", err)
	}
	c.logger.Info("solicitud posted",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("modalidad", payload.Modalidad),
	)

	if !c.contract.Declares(resp.StatusCode) {
		return Created{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if err := c.contract.ValidateResponse(resp.StatusCode, raw); err != nil {
		return Created{}, err
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Created{}, fmt.Errorf("submit: decode envelope: %w", err)
	}
	if resp.StatusCode != http.StatusCreated || !envelope.OK {
		return Created{}, &BackendError{
			Status:  resp.StatusCode,
			Message: envelope.Msg,
			Fields:  decodeFieldErrors(envelope.Data),
		}
	}
	return Created{Status: resp.StatusCode, Message: envelope.Msg, Data: envelope.Data}, nil
}

// decodeFieldErrors reads data.errors, accepting either a single message or a
// list per path.
func decodeFieldErrors(data json.RawMessage) map[string][]string {
	if len(data) == 0 {
		return nil
	}
	var body struct {
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Errors) == 0 {
		return nil
	}
	out := make(map[string][]string, len(body.Errors))
	for path, raw := range body.Errors {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			out[path] = list
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			out[path] = []string{single}
		}
	}
	return out
}
