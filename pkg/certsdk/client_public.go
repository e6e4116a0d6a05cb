package certsdk

import (
	"context"
	"net/url"
)

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return get[HealthResponse](ctx, c, "/livez", "")
}

// GetReadiness checks if the service and its collaborators are ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return get[HealthResponse](ctx, c, "/readyz", "")
}

// GetJWKS retrieves the keys session tokens are signed with.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	return get[JWKSResponse](ctx, c, "/.well-known/jwks.json", "")
}

// VerifyCertificate looks a certificate up by id. Encrypted attributes are
// never returned.
func (c *Client) VerifyCertificate(ctx context.Context, id string) (*VerifyResponse, error) {
	return get[VerifyResponse](ctx, c, "/v1/verify?"+url.Values{"id": {id}}.Encode(), "")
}

// VerifyMint looks a certificate up by its ledger mint address.
func (c *Client) VerifyMint(ctx context.Context, mintAddress string) (*VerifyResponse, error) {
	return get[VerifyResponse](ctx, c, "/v1/verify?"+url.Values{"mint": {mintAddress}}.Encode(), "")
}

// VerifyShare redeems a share token. An expired token returns an *APIError
// with code expired and status 410.
func (c *Client) VerifyShare(ctx context.Context, token string) (*VerifyResponse, error) {
	return get[VerifyResponse](ctx, c, "/v1/verify/"+url.PathEscape(token), "")
}

func (c *Client) SearchInstitutions(ctx context.Context, query string) (*InstitutionsResponse, error) {
	return get[InstitutionsResponse](ctx, c, "/v1/institutions?"+url.Values{"query": {query}}.Encode(), "")
}

func (c *Client) GetInstitution(ctx context.Context, id string) (*Institution, error) {
	return get[Institution](ctx, c, "/v1/institutions/"+url.PathEscape(id), "")
}
