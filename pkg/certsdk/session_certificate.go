package certsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// IssueCertificate runs the issuance workflow. req.IssuerWallet defaults to
// the session wallet. A reconciliation_required *APIError carries the mint
// address of an asset the service failed to record.
func (s *Session) IssueCertificate(ctx context.Context, req IssueCertificateRequest) (*Certificate, error) {
	if req.IssuerWallet == "" {
		req.IssuerWallet = s.wallet
	}
	return sessionSend[Certificate](ctx, s, http.MethodPost, "/v1/certificates", req, http.StatusCreated)
}

// ListCertificates lists the session wallet's certificates. Zero page or
// limit uses the server defaults.
func (s *Session) ListCertificates(ctx context.Context, page, limit int) (*CertificatesResponse, error) {
	q := url.Values{"wallet": {s.wallet}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return sessionGet[CertificatesResponse](ctx, s, "/v1/certificates?"+q.Encode())
}

func (s *Session) CreateShare(ctx context.Context, req CreateShareRequest) (*CreateShareResponse, error) {
	return sessionSend[CreateShareResponse](ctx, s, http.MethodPost, "/v1/shares", req, http.StatusCreated)
}

func (s *Session) ListShares(ctx context.Context) (*SharesResponse, error) {
	return sessionGet[SharesResponse](ctx, s, "/v1/shares")
}

func (s *Session) RevokeShare(ctx context.Context, id string) error {
	return s.doNoContent(ctx, http.MethodDelete, "/v1/shares/"+url.PathEscape(id))
}

func (s *Session) ListNotifications(ctx context.Context, unreadOnly bool) (*NotificationsResponse, error) {
	path := "/v1/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	return sessionGet[NotificationsResponse](ctx, s, path)
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	return s.doNoContent(ctx, http.MethodPost, "/v1/notifications/"+url.PathEscape(id)+"/read")
}
