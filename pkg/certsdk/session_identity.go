package certsdk

import (
	"context"
	"net/http"
	"net/url"
)

// UpsertIdentity registers or updates an identity. req.WalletAddress
// defaults to the session wallet; institution administrators may enroll
// another wallet as INSTITUTION.
func (s *Session) UpsertIdentity(ctx context.Context, req UpsertIdentityRequest) (*Identity, error) {
	if req.WalletAddress == "" {
		req.WalletAddress = s.wallet
	}
	return sessionSend[Identity](ctx, s, http.MethodPost, "/v1/identities", req, http.StatusOK)
}

func (s *Session) GetIdentity(ctx context.Context, wallet string) (*Identity, error) {
	return sessionGet[Identity](ctx, s, "/v1/identities?"+url.Values{"wallet": {wallet}}.Encode())
}

func (s *Session) FindIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	return sessionGet[Identity](ctx, s, "/v1/identities?"+url.Values{"email": {email}}.Encode())
}

// UpdateProfile changes the session identity's display name or email.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Identity, error) {
	return sessionSend[Identity](ctx, s, http.MethodPatch, "/v1/identities/me", req, http.StatusOK)
}

func (s *Session) CreateInstitution(ctx context.Context, req CreateInstitutionRequest) (*Institution, error) {
	return sessionSend[Institution](ctx, s, http.MethodPost, "/v1/institutions", req, http.StatusCreated)
}

// SearchRecipients finds students by name, email or wallet. A non-empty
// institutionID narrows to students holding one of its certificates.
func (s *Session) SearchRecipients(ctx context.Context, query, institutionID string) (*RecipientsResponse, error) {
	q := url.Values{"query": {query}}
	if institutionID != "" {
		q.Set("institution", institutionID)
	}
	return sessionGet[RecipientsResponse](ctx, s, "/v1/recipients?"+q.Encode())
}

// CreateRecipient registers a student on behalf of an institution.
func (s *Session) CreateRecipient(ctx context.Context, req CreateRecipientRequest) (*Identity, error) {
	return sessionSend[Identity](ctx, s, http.MethodPost, "/v1/recipients", req, http.StatusOK)
}
