// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/swiftticket/swiftticket/lib/clock"
)

// DefaultBaseURL is the API root of a local development server.
const DefaultBaseURL = "http://localhost:8000/api"

// MaxResponseSize bounds response body reads: 32 MiB.
const MaxResponseSize int64 = 32 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root, for example "https://tickets.example.com/api".
	// Defaults to DefaultBaseURL.
	BaseURL string

	// Token is a bearer access token. Optional: the register and
	// login endpoints work without one, and Login installs the token
	// it receives.
	Token string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock measures request durations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed SwiftTicket REST API client. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	tokenMu sync.RWMutex
	token   string
}

// NewClient creates a client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("tracker: parsing base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("tracker: base URL must be http or https (got %q)", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("tracker: base URL has no host (got %q)", baseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
		token:      config.Token,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// SetToken replaces the bearer token used for subsequent requests.
// An empty token sends requests unauthenticated.
func (client *Client) SetToken(token string) {
	client.tokenMu.Lock()
	defer client.tokenMu.Unlock()
	client.token = token
}

func (client *Client) currentToken() string {
	client.tokenMu.RLock()
	defer client.tokenMu.RUnlock()
	return client.token
}

// do executes a request against path (relative to the base URL,
// starting with "/") and returns the response body. requestBody is
// JSON-encoded when non-nil. Any failure is returned as a
// *TransportError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	requestID := uuid.NewString()
	started := client.clock.Now()

	body, statusCode, err := client.roundTrip(ctx, method, path, requestID, requestBody)
	client.logger.Debug("api request",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", statusCode,
		"duration", client.clock.Since(started),
	)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, RequestID: requestID, Err: err}
	}
	return body, nil
}

// roundTrip performs one HTTP exchange. Non-2xx responses are returned
// as *APIError.
func (client *Client) roundTrip(ctx context.Context, method, path, requestID string, requestBody any) ([]byte, int, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", requestID)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := client.currentToken(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	body, err := readResponse(response.Body)
	if err != nil {
		return nil, response.StatusCode, fmt.Errorf("reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, response.StatusCode, parseAPIErrorFromBody(response.StatusCode, body)
	}
	return body, response.StatusCode, nil
}

// readResponse reads a response body up to MaxResponseSize bytes. A
// body exceeding the bound is an error rather than a silent
// truncation that would surface later as a confusing decode failure.
func readResponse(body io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeds %d bytes", MaxResponseSize)
	}
	return data, nil
}

// get issues a GET and decodes the response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return client.decode(http.MethodGet, path, body, result)
}

// post issues a POST and decodes the response into result when result
// is non-nil.
func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return client.decode(http.MethodPost, path, body, result)
}

// put issues a PUT and decodes the response into result when result
// is non-nil.
func (client *Client) put(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPut, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return client.decode(http.MethodPut, path, body, result)
}

// decode unmarshals body into result. An empty body leaves result at
// its zero value; mutation endpoints may acknowledge with no content.
func (client *Client) decode(method, path string, body []byte, result any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// listEnvelope accepts the shapes list endpoints have been seen to
// return: a bare array, a paginated {"results": [...]} object, or a
// {"tickets": [...]} object.
type listEnvelope[T any] struct {
	items []T
}

func (envelope *listEnvelope[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &envelope.items)
	}
	var wrapped struct {
		Results []T `json:"results"`
		Tickets []T `json:"tickets"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	switch {
	case wrapped.Results != nil:
		envelope.items = wrapped.Results
	case wrapped.Tickets != nil:
		envelope.items = wrapped.Tickets
	default:
		return fmt.Errorf("expected a JSON array or an object with results")
	}
	return nil
}

// list issues a GET against a collection endpoint. The result is never
// nil.
func list[T any](ctx context.Context, client *Client, path string) ([]T, error) {
	var envelope listEnvelope[T]
	if err := client.get(ctx, path, &envelope); err != nil {
		return nil, err
	}
	if envelope.items == nil {
		return []T{}, nil
	}
	return envelope.items, nil
}
