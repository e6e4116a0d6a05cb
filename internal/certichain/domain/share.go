package domain

import "time"

// Share grants time-limited read access to one certificate. Only the
// fingerprint of the token is persisted.
type Share struct {
	ID             string
	OwnerID        string
	CertificateID  string
	TokenHash      string
	RecipientEmail string
	ExpiresAt      time.Time
	IncludePrivate bool
	AccessedAt     *time.Time
	CreatedAt      time.Time
}

func (s Share) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
