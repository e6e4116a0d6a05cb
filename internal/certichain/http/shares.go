package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/samber/lo"
)

type ShareHandler struct {
	ShareService    *service.ShareService
	IdentityService *service.IdentityService
}

// HandleCreate handles POST /v1/shares
//
//	@Summary		Share a certificate
//	@Description	Creates a time-limited share link for a certificate the session identity received or issued. The token is returned once and only its fingerprint is stored.
//	@Tags			Shares
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.CreateShareRequest	true	"Share"
//	@Success		201		{object}	certsdk.CreateShareResponse
//	@Failure		400		{object}	certsdk.ErrorResponse	"expiryDays outside 1..365 or invalid email"
//	@Failure		403		{object}	certsdk.ErrorResponse
//	@Failure		404		{object}	certsdk.ErrorResponse
//	@Router			/v1/shares [post].
func (h *ShareHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req certsdk.CreateShareRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	owner, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	cs, err := h.ShareService.Create(r.Context(), owner, service.CreateShareInput{
		CertificateID:  req.CertificateID,
		RecipientEmail: req.RecipientEmail,
		ExpiryDays:     req.ExpiryDays,
		IncludePrivate: req.IncludePrivate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, certsdk.CreateShareResponse{
		Share:    toShare(cs.Share),
		Token:    cs.Token,
		ShareURL: cs.URL,
	})
}

// HandleList handles GET /v1/shares
//
//	@Summary		List own shares
//	@Tags			Shares
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	certsdk.SharesResponse
//	@Failure		404	{object}	certsdk.ErrorResponse	"wallet not registered"
//	@Router			/v1/shares [get].
func (h *ShareHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	shares, err := h.ShareService.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certsdk.SharesResponse{
		Shares: lo.Map(shares, func(s domain.Share, _ int) certsdk.Share { return toShare(s) }),
	})
}

// HandleRevoke handles DELETE /v1/shares/{id}
//
//	@Summary		Revoke a share
//	@Tags			Shares
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Share id"
//	@Success		204
//	@Failure		403	{object}	certsdk.ErrorResponse	"share belongs to another identity"
//	@Failure		404	{object}	certsdk.ErrorResponse
//	@Router			/v1/shares/{id} [delete].
func (h *ShareHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	owner, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.ShareService.Revoke(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
