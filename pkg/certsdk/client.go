package certsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the CertiChain service. It covers the public
// endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			// Issuance waits on ledger confirmation.
			Timeout: 90 * time.Second,
		},
	}
}

// NewSession wraps an access token obtained elsewhere.
func (c *Client) NewSession(wallet, accessToken string, expiresIn int) *Session {
	return newSession(c, wallet, &TokenResponse{AccessToken: accessToken, ExpiresIn: expiresIn})
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an unauthenticated request. A non-nil payload is sent
// as a JSON body.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any, token string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatusNoContent returns a typed error if the response status is not 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}

// get is the common shape of a GET decoded into T.
func get[T any](ctx context.Context, c *Client, path, token string) (*T, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// send is the common shape of a request with a JSON body decoded into T.
func send[T any](ctx context.Context, c *Client, method, path, token string, payload any, expectedStatus int) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, payload, token)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decodeJSON(resp, &out, expectedStatus); err != nil {
		return nil, err
	}
	return &out, nil
}
