package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/samber/lo"
)

type CertificateHandler struct {
	IssuanceService    *service.IssuanceService
	CertificateService *service.CertificateService
}

// HandleIssue handles POST /v1/certificates
//
//	@Summary		Issue a certificate
//	@Description	Validates the request, resolves both parties, checks that the issuer administers the institution, publishes the metadata document, mints the ledger asset and records the certificate, in that order.
//	@Description	A failure after the mint returns reconciliation_required with the mint address and transaction id.
//	@Tags			Certificates
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.IssueCertificateRequest	true	"Certificate"
//	@Success		201		{object}	certsdk.Certificate
//	@Failure		400		{object}	certsdk.ErrorResponse	"invalid_request"
//	@Failure		403		{object}	certsdk.ErrorResponse	"not_authorized"
//	@Failure		404		{object}	certsdk.ErrorResponse	"unknown recipient, issuer or institution"
//	@Failure		500		{object}	certsdk.ErrorResponse	"reconciliation_required"
//	@Failure		502		{object}	certsdk.ErrorResponse	"upstream_unavailable"
//	@Router			/v1/certificates [post].
func (h *CertificateHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req certsdk.IssueCertificateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}
	if req.IssuerWallet == "" {
		req.IssuerWallet = sessionWallet(r)
	}
	if req.IssuerWallet != sessionWallet(r) {
		writeForbidden(w, "certificates can only be issued by the session wallet")
		return
	}

	cert, err := h.IssuanceService.Issue(r.Context(), service.IssueRequest{
		Title:           req.Title,
		Type:            req.Type,
		RecipientWallet: req.RecipientWallet,
		IssuerWallet:    req.IssuerWallet,
		InstitutionID:   req.InstitutionID,
		Metadata:        fromMetadata(req.Metadata),
		ExpiryDate:      req.ExpiryDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCertificate(cert))
}

// HandleList handles GET /v1/certificates
//
//	@Summary		List certificates
//	@Description	Certificates received by a student or employer wallet, or issued by an institution wallet, newest first. The wallet defaults to the session wallet and may not be another one.
//	@Tags			Certificates
//	@Produce		json
//	@Security		BearerAuth
//	@Param			wallet	query		string	false	"Wallet address"
//	@Param			page	query		int		false	"Page number (default 1, max 1000000)"
//	@Param			limit	query		int		false	"Page size (default 10, max 100)"
//	@Success		200		{object}	certsdk.CertificatesResponse
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		403		{object}	certsdk.ErrorResponse
//	@Router			/v1/certificates [get].
func (h *CertificateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		wallet = sessionWallet(r)
	}
	if wallet != sessionWallet(r) {
		writeForbidden(w, "certificates can only be listed for the session wallet")
		return
	}

	page, okPage := queryInt(r, "page")
	limit, okLimit := queryInt(r, "limit")
	if !okPage || !okLimit {
		writeInvalid(w, "page and limit must be non-negative integers")
		return
	}

	res, err := h.CertificateService.ListForWallet(r.Context(), wallet, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certsdk.CertificatesResponse{
		Certificates: lo.Map(res.Certificates, func(c domain.Certificate, _ int) certsdk.Certificate {
			return toCertificate(c)
		}),
		Pagination: certsdk.Pagination(res.Pagination),
	})
}
