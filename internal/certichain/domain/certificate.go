package domain

import (
	"fmt"
	"strings"
	"time"
)

type CertificateType string

const (
	CertificateDegree      CertificateType = "DEGREE"
	CertificateDiploma     CertificateType = "DIPLOMA"
	CertificateCertificate CertificateType = "CERTIFICATE"
	CertificateCourse      CertificateType = "COURSE"
	CertificateAward       CertificateType = "AWARD"
)

// ParseCertificateType only accepts the closed set of types.
func ParseCertificateType(s string) (CertificateType, error) {
	t := CertificateType(strings.TrimSpace(s))
	switch t {
	case CertificateDegree, CertificateDiploma, CertificateCertificate, CertificateCourse, CertificateAward:
		return t, nil
	}
	return "", fmt.Errorf("unknown certificate type %q", s)
}

// Certificate is created exactly once by issuance and never mutated.
type Certificate struct {
	ID            string
	Title         string
	Type          CertificateType
	RecipientID   string
	IssuerID      string
	InstitutionID string
	Metadata      Metadata
	MintAddress   string
	ExpiryDate    *time.Time
	CreatedAt     time.Time

	// Joined on reads, ignored on insert.
	Recipient       Party
	Issuer          Party
	InstitutionName string
}

// IsExpired reports whether the certificate itself carries a past expiry.
func (c Certificate) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && now.After(*c.ExpiryDate)
}
