package certsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeNotFound               = "not_found"
	ErrorCodeNotAuthorized          = "not_authorized"
	ErrorCodeUnauthenticated        = "unauthenticated"
	ErrorCodeUpstreamUnavailable    = "upstream_unavailable"
	ErrorCodeReconciliationRequired = "reconciliation_required"
	ErrorCodeExpired                = "expired"
	ErrorCodeRateLimited            = "rate_limit_exceeded"
	ErrorCodeServerError            = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Set when an asset was minted but the service could not record it.
	MintAddress   string
	TransactionID string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("certichain: %s (HTTP %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("certichain: %s: %s", e.Code, e.Description)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:    resp.StatusCode,
			Code:          errResp.Error,
			Description:   errResp.ErrorDescription,
			MintAddress:   errResp.MintAddress,
			TransactionID: errResp.TransactionID,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
