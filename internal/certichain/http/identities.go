package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
)

// IdentityHandler serves identities and institution recipients.
type IdentityHandler struct {
	IdentityService *service.IdentityService
}

// HandleUpsert handles POST /v1/identities
//
//	@Summary		Register or update an identity
//	@Description	Upserts the identity keyed by walletAddress, the session wallet by default. Empty fields keep their stored values. Role INSTITUTION requires an existing institutionId, and joining an institution that has administrators requires an administrator session. Administrators may enroll another wallet as INSTITUTION.
//	@Tags			Identities
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.UpsertIdentityRequest	true	"Identity"
//	@Success		200		{object}	certsdk.Identity
//	@Failure		400		{object}	certsdk.ErrorResponse	"invalid address, role or email; email already in use"
//	@Failure		401		{object}	certsdk.ErrorResponse
//	@Failure		403		{object}	certsdk.ErrorResponse	"not the session wallet or not an administrator of institutionId"
//	@Failure		404		{object}	certsdk.ErrorResponse	"unknown institution"
//	@Router			/v1/identities [post].
func (h *IdentityHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req certsdk.UpsertIdentityRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}
	if req.WalletAddress == "" {
		req.WalletAddress = sessionWallet(r)
	}

	id, err := h.IdentityService.Upsert(r.Context(), service.UpsertIdentityInput{
		Actor:         sessionWallet(r),
		WalletAddress: req.WalletAddress,
		Role:          req.Role,
		DisplayName:   req.DisplayName,
		Email:         req.Email,
		InstitutionID: req.InstitutionID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(id))
}

// HandleGet handles GET /v1/identities
//
//	@Summary		Look an identity up
//	@Description	Finds an identity by wallet address or by email. Exactly one of the two is required.
//	@Tags			Identities
//	@Produce		json
//	@Security		BearerAuth
//	@Param			wallet	query		string	false	"Wallet address"
//	@Param			email	query		string	false	"Email address"
//	@Success		200		{object}	certsdk.Identity
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		404		{object}	certsdk.ErrorResponse
//	@Router			/v1/identities [get].
func (h *IdentityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wallet, email := q.Get("wallet"), q.Get("email")

	var (
		id  domain.Identity
		err error
	)
	switch {
	case wallet != "" && email != "":
		writeInvalid(w, "use either wallet or email, not both")
		return
	case wallet != "":
		id, err = h.IdentityService.Resolve(r.Context(), wallet)
	case email != "":
		id, err = h.IdentityService.FindByEmail(r.Context(), email)
	default:
		writeInvalid(w, "wallet or email is required")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(id))
}

// HandleUpdateMe handles PATCH /v1/identities/me
//
//	@Summary		Update profile settings
//	@Description	Changes the display name or email of the session identity. Omitted fields are unchanged, an empty email clears it.
//	@Tags			Identities
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.UpdateProfileRequest	true	"Profile changes"
//	@Success		200		{object}	certsdk.Identity
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		404		{object}	certsdk.ErrorResponse	"wallet not registered"
//	@Router			/v1/identities/me [patch].
func (h *IdentityHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req certsdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	id, err := h.IdentityService.UpdateProfile(r.Context(), sessionWallet(r), req.DisplayName, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(id))
}

// requireInstitution admits only sessions whose registered identity is an
// institution account.
func (h *IdentityHandler) requireInstitution(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	caller, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return domain.Identity{}, false
	}
	if caller.Role != domain.RoleInstitution {
		writeForbidden(w, "only institution accounts manage recipients")
		return domain.Identity{}, false
	}
	return caller, true
}

// HandleSearchRecipients handles GET /v1/recipients
//
//	@Summary		Search recipients
//	@Description	Finds students by name, email or wallet. With institution set, only students holding one of its certificates match.
//	@Tags			Recipients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			query		query		string	false	"Search text"
//	@Param			institution	query		string	false	"Institution id"
//	@Param			limit		query		int		false	"Maximum results (default 20, max 100)"
//	@Success		200			{object}	certsdk.RecipientsResponse
//	@Failure		403			{object}	certsdk.ErrorResponse	"caller is not an institution"
//	@Router			/v1/recipients [get].
func (h *IdentityHandler) HandleSearchRecipients(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireInstitution(w, r); !ok {
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalid(w, "limit must be a non-negative integer")
		return
	}

	q := r.URL.Query()
	found, err := h.IdentityService.SearchRecipients(r.Context(), q.Get("query"), q.Get("institution"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certsdk.RecipientsResponse{Recipients: toIdentities(found)})
}

// HandleCreateRecipient handles POST /v1/recipients
//
//	@Summary		Register a recipient
//	@Description	Upserts a student identity by wallet. An existing identity keeps its role.
//	@Tags			Recipients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.CreateRecipientRequest	true	"Recipient"
//	@Success		200		{object}	certsdk.Identity
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		403		{object}	certsdk.ErrorResponse	"caller is not an institution"
//	@Router			/v1/recipients [post].
func (h *IdentityHandler) HandleCreateRecipient(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireInstitution(w, r); !ok {
		return
	}

	var req certsdk.CreateRecipientRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	id, err := h.IdentityService.UpsertStudent(r.Context(), req.WalletAddress, req.DisplayName, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toIdentity(id))
}
