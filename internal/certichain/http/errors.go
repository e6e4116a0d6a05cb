package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

var kindStatus = map[service.Kind]int{
	service.KindInvalidRequest:         http.StatusBadRequest,
	service.KindNotAuthorized:          http.StatusForbidden,
	service.KindNotFound:               http.StatusNotFound,
	service.KindExpired:                http.StatusGone,
	service.KindUpstreamUnavailable:    http.StatusBadGateway,
	service.KindReconciliationRequired: http.StatusInternalServerError,
}

// writeServiceError maps a service failure onto its status and error body.
// Unclassified errors are logged and reported as server_error without
// detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, certsdk.ErrorCodeServerError, "internal server error")
		return
	}

	body := certsdk.ErrorResponse{Error: string(kind), ErrorDescription: err.Error()}

	var re *service.ReconciliationError
	if errors.As(err, &re) {
		body.ErrorDescription = "asset minted but not recorded; reconciliation required"
		body.MintAddress = re.MintAddress
		body.TransactionID = re.TransactionID
	}
	httpx.WriteJSON(w, status, body)
}

func writeInvalid(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, certsdk.ErrorCodeInvalidRequest, desc)
}

func writeForbidden(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusForbidden, certsdk.ErrorCodeNotAuthorized, desc)
}
