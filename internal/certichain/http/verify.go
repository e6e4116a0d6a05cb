package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
)

type VerifyHandler struct {
	VerificationService *service.VerificationService
}

// HandleLookup handles GET /v1/verify
//
//	@Summary		Verify a certificate
//	@Description	Looks a certificate up by id or by ledger mint address. Encrypted attributes are never included.
//	@Tags			Verify
//	@Produce		json
//	@Param			id		query		string	false	"Certificate id"
//	@Param			mint	query		string	false	"Mint address"
//	@Success		200		{object}	certsdk.VerifyResponse
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		404		{object}	certsdk.ErrorResponse
//	@Router			/v1/verify [get].
func (h *VerifyHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, mint := q.Get("id"), q.Get("mint")

	var (
		v   service.Verification
		err error
	)
	switch {
	case id != "" && mint != "":
		writeInvalid(w, "use either id or mint, not both")
		return
	case id != "":
		v, err = h.VerificationService.VerifyByID(r.Context(), id)
	case mint != "":
		v, err = h.VerificationService.VerifyByMint(r.Context(), mint)
	default:
		writeInvalid(w, "id or mint is required")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVerifyResponse(v))
}

// HandleToken handles GET /v1/verify/{token}
//
//	@Summary		Redeem a share link
//	@Description	Resolves a share token. Expired links return 410 and are removed. Encrypted attributes are included only when the share allows it. Every successful read records the access time.
//	@Tags			Verify
//	@Produce		json
//	@Param			token	path		string	true	"Share token"
//	@Success		200		{object}	certsdk.VerifyResponse
//	@Failure		404		{object}	certsdk.ErrorResponse
//	@Failure		410		{object}	certsdk.ErrorResponse	"share expired"
//	@Router			/v1/verify/{token} [get].
func (h *VerifyHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	v, err := h.VerificationService.VerifyByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toVerifyResponse(v))
}

func toVerifyResponse(v service.Verification) certsdk.VerifyResponse {
	resp := certsdk.VerifyResponse{
		Valid:       !v.Expired,
		Expired:     v.Expired,
		Certificate: toCertificate(v.Certificate),
	}
	if v.Share != nil {
		s := toShare(*v.Share)
		resp.Share = &s
	}
	return resp
}
