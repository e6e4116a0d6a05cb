package certsdk

import (
	"time"

	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
)

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse = httpx.ErrorResponse

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"1.0.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each collaborator the service needs to
// issue certificates.
type HealthChecks struct {
	Database  string `json:"database" example:"ok"`
	Ledger    string `json:"ledger" example:"ok"`
	Publisher string `json:"publisher" example:"ok"`
	Signer    string `json:"signer" example:"ok"`
}

// JWKSResponse contains the public keys session tokens are signed with.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Wallet Sign-in
// ============================================================================

type ChallengeRequest struct {
	WalletAddress string `json:"walletAddress" example:"9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"`
}

// ChallengeResponse carries the exact message the wallet must sign.
type ChallengeResponse struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenRequest redeems a challenge. Signature is a base58 ed25519 signature
// over ChallengeResponse.Message.
type TokenRequest struct {
	WalletAddress string `json:"walletAddress"`
	Nonce         string `json:"nonce"`
	Signature     string `json:"signature"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"Bearer"`
	ExpiresIn   int       `json:"expires_in" example:"3600"`
	Identity    *Identity `json:"identity,omitempty"`
}

// ============================================================================
// Identities and Institutions
// ============================================================================

type Identity struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Role          string    `json:"role" example:"STUDENT"`
	DisplayName   string    `json:"displayName,omitempty"`
	Email         string    `json:"email,omitempty"`
	InstitutionID string    `json:"institutionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// UpsertIdentityRequest creates or updates the identity keyed by
// WalletAddress. Empty fields keep the stored value.
type UpsertIdentityRequest struct {
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role,omitempty" example:"INSTITUTION"`
	DisplayName   string `json:"displayName,omitempty"`
	Email         string `json:"email,omitempty"`
	InstitutionID string `json:"institutionId,omitempty"`
}

// UpdateProfileRequest changes the caller's settings. Nil fields are left
// unchanged; an empty email clears it.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type CreateRecipientRequest struct {
	WalletAddress string `json:"walletAddress"`
	DisplayName   string `json:"displayName,omitempty"`
	Email         string `json:"email,omitempty"`
}

type RecipientsResponse struct {
	Recipients []Identity `json:"recipients"`
}

type Institution struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Website        string     `json:"website,omitempty"`
	Administrators []Identity `json:"administrators,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type CreateInstitutionRequest struct {
	Name    string `json:"name" example:"Stanford University"`
	Website string `json:"website,omitempty" example:"https://stanford.edu"`
}

type InstitutionsResponse struct {
	Institutions []Institution `json:"institutions"`
}

// ============================================================================
// Certificates
// ============================================================================

type Attribute struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	IsEncrypted bool   `json:"isEncrypted,omitempty"`
}

// Metadata is the certificate document together with its ledger and content
// storage anchors. The anchors are set by the service and must be empty on
// issue.
type Metadata struct {
	Description string         `json:"description,omitempty"`
	Attributes  []Attribute    `json:"attributes,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`

	ContentAddress string `json:"contentAddress,omitempty"`
	ContentURI     string `json:"contentUri,omitempty"`
	TransactionID  string `json:"transactionId,omitempty"`
	Network        string `json:"network,omitempty"`
}

type Party struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	DisplayName   string `json:"displayName,omitempty"`
}

type Certificate struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Type            string     `json:"type" example:"DEGREE"`
	MintAddress     string     `json:"mintAddress"`
	InstitutionID   string     `json:"institutionId"`
	InstitutionName string     `json:"institutionName,omitempty"`
	Recipient       Party      `json:"recipient"`
	Issuer          Party      `json:"issuer"`
	Metadata        Metadata   `json:"metadata"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type IssueCertificateRequest struct {
	Title           string     `json:"title" example:"Bachelor of Science"`
	Type            string     `json:"type" example:"DEGREE"`
	RecipientWallet string     `json:"recipientWallet"`
	IssuerWallet    string     `json:"issuerWallet"`
	InstitutionID   string     `json:"institutionId"`
	Metadata        Metadata   `json:"metadata"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

type CertificatesResponse struct {
	Certificates []Certificate `json:"certificates"`
	Pagination   Pagination    `json:"pagination"`
}

// VerifyResponse is returned by every verification endpoint. Share is set
// only for token verification.
type VerifyResponse struct {
	Valid       bool        `json:"valid"`
	Expired     bool        `json:"expired"`
	Certificate Certificate `json:"certificate"`
	Share       *Share      `json:"share,omitempty"`
}

// ============================================================================
// Shares and Notifications
// ============================================================================

type CreateShareRequest struct {
	CertificateID  string `json:"certificateId"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	ExpiryDays     *int   `json:"expiryDays,omitempty" example:"7"`
	IncludePrivate bool   `json:"includePrivate,omitempty"`
}

// CreateShareResponse is the only response that carries the raw token.
type CreateShareResponse struct {
	Share    Share  `json:"share"`
	Token    string `json:"token"`
	ShareURL string `json:"shareUrl"`
}

type Share struct {
	ID             string     `json:"id"`
	CertificateID  string     `json:"certificateId"`
	RecipientEmail string     `json:"recipientEmail,omitempty"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	IncludePrivate bool       `json:"includePrivate"`
	AccessedAt     *time.Time `json:"accessedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type SharesResponse struct {
	Shares []Share `json:"shares"`
}

type Notification struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind" example:"certificate_issued"`
	Payload   map[string]string `json:"payload,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"createdAt"`
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}
