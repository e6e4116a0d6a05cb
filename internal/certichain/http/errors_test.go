package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid", &service.Error{Kind: service.KindInvalidRequest, Message: "title is required"}, http.StatusBadRequest, "invalid_request"},
		{"not authorized", &service.Error{Kind: service.KindNotAuthorized}, http.StatusForbidden, "not_authorized"},
		{"not found", fmt.Errorf("wrapped: %w", &service.Error{Kind: service.KindNotFound}), http.StatusNotFound, "not_found"},
		{"expired", &service.Error{Kind: service.KindExpired}, http.StatusGone, "expired"},
		{"upstream", &service.Error{Kind: service.KindUpstreamUnavailable}, http.StatusBadGateway, "upstream_unavailable"},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError, "server_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			require.Equal(t, tc.status, rec.Code)

			var body certsdk.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.code, body.Error)
			require.NotContains(t, body.ErrorDescription, "disk on fire")
		})
	}
}

func TestWriteServiceError_Reconciliation(t *testing.T) {
	err := &service.ReconciliationError{
		MintAddress:    "Mint111",
		TransactionID:  "Tx111",
		ContentAddress: "Qm111",
		Err:            errors.New("database is locked"),
	}

	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodPost, "/v1/certificates", nil), err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body certsdk.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "reconciliation_required", body.Error)
	require.Equal(t, "Mint111", body.MintAddress)
	require.Equal(t, "Tx111", body.TransactionID)
	require.NotContains(t, body.ErrorDescription, "database is locked")
}
