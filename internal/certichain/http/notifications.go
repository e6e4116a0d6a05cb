package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/samber/lo"
)

type NotificationHandler struct {
	NotificationService *service.NotificationService
	IdentityService     *service.IdentityService
}

// HandleList handles GET /v1/notifications
//
//	@Summary		List notifications
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			unread	query		bool	false	"Only unread notifications"
//	@Param			limit	query		int		false	"Maximum results (default 50, max 200)"
//	@Success		200		{object}	certsdk.NotificationsResponse
//	@Router			/v1/notifications [get].
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	owner, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeInvalid(w, "limit must be a non-negative integer")
		return
	}

	unread := r.URL.Query().Get("unread") == "true"
	notes, err := h.NotificationService.List(r.Context(), owner, unread, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, certsdk.NotificationsResponse{
		Notifications: lo.Map(notes, func(n domain.Notification, _ int) certsdk.Notification {
			return toNotification(n)
		}),
	})
}

// HandleMarkRead handles POST /v1/notifications/{id}/read
//
//	@Summary		Mark a notification read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification id"
//	@Success		204
//	@Failure		404	{object}	certsdk.ErrorResponse
//	@Router			/v1/notifications/{id}/read [post].
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	owner, err := actingIdentity(r, h.IdentityService)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.NotificationService.MarkRead(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
