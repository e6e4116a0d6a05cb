package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/samber/lo"
)

type InstitutionHandler struct {
	InstitutionService *service.InstitutionService
}

// HandleCreate handles POST /v1/institutions
//
//	@Summary		Create an institution
//	@Description	The session wallet becomes the first administrator. A wallet that already administers an institution is refused.
//	@Tags			Institutions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		certsdk.CreateInstitutionRequest	true	"Institution"
//	@Success		201		{object}	certsdk.Institution
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		401		{object}	certsdk.ErrorResponse
//	@Router			/v1/institutions [post].
func (h *InstitutionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req certsdk.CreateInstitutionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	inst, err := h.InstitutionService.Create(r.Context(), sessionWallet(r), req.Name, req.Website)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInstitution(inst))
}

// HandleSearch handles GET /v1/institutions
//
//	@Summary		Search institutions
//	@Description	Case-insensitive name match, each result with its administrators.
//	@Tags			Institutions
//	@Produce		json
//	@Param			query	query		string	false	"Name fragment"
//	@Param			limit	query		int		false	"Maximum results (default 20, max 100)"
//	@Success		200		{object}	certsdk.InstitutionsResponse
//	@Router			/v1/institutions [get].
func (h *InstitutionHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalid(w, "limit must be a non-negative integer")
		return
	}

	found, err := h.InstitutionService.Search(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certsdk.InstitutionsResponse{
		Institutions: lo.Map(found, func(inst domain.Institution, _ int) certsdk.Institution {
			return toInstitution(inst)
		}),
	})
}

// HandleGet handles GET /v1/institutions/{id}
//
//	@Summary		Get an institution
//	@Tags			Institutions
//	@Produce		json
//	@Param			id	path		string	true	"Institution id"
//	@Success		200	{object}	certsdk.Institution
//	@Failure		404	{object}	certsdk.ErrorResponse
//	@Router			/v1/institutions/{id} [get].
func (h *InstitutionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	inst, err := h.InstitutionService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInstitution(inst))
}
