package metadata

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/mr-tron/base58"
)

// Document is the published form of a certificate's metadata. It is
// addressed by the hash of its encoding, so two byte-identical documents share
// one address.
type Document struct {
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Description     string             `json:"description,omitempty"`
	Recipient       string             `json:"recipient"`
	Issuer          string             `json:"issuer"`
	InstitutionID   string             `json:"institutionId"`
	InstitutionName string             `json:"institutionName,omitempty"`
	IssuedAt        time.Time          `json:"issuedAt"`
	ExpiryDate      *time.Time         `json:"expiryDate,omitempty"`
	Attributes      []domain.Attribute `json:"attributes"`
	Properties      map[string]any     `json:"properties,omitempty"`
}

// Seal returns a copy whose encrypted attributes carry sealed values. Each
// value is bound to its attribute key. Already sealed values are kept.
func (d Document) Seal(s *cryptox.Sealer) (Document, error) {
	out := d
	out.Attributes = make([]domain.Attribute, len(d.Attributes))

	for i, a := range d.Attributes {
		if a.Encrypted && !cryptox.IsSealed(a.Value) {
			sealed, err := s.Seal([]byte(a.Value), []byte(a.Key))
			if err != nil {
				return Document{}, fmt.Errorf("seal attribute %q: %w", a.Key, err)
			}
			a.Value = sealed
		}
		out.Attributes[i] = a
	}
	return out, nil
}

// Encode returns the canonical JSON encoding. Struct fields keep declaration
// order and map keys are sorted, so equal documents encode identically.
func Encode(d Document) ([]byte, error) {
	if d.Attributes == nil {
		d.Attributes = []domain.Attribute{}
	}
	return json.Marshal(d)
}

// ContentAddress is the base58 sha2-256 multihash of data (CIDv0 form).
func ContentAddress(data []byte) string {
	sum := sha256.Sum256(data)
	mh := make([]byte, 0, 2+len(sum))
	mh = append(mh, 0x12, 0x20)
	mh = append(mh, sum[:]...)
	return base58.Encode(mh)
}

// ValidContentAddress reports whether s decodes to a sha2-256 multihash.
func ValidContentAddress(s string) bool {
	raw, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(raw) == 34 && raw[0] == 0x12 && raw[1] == 0x20
}
