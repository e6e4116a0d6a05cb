package domain

import (
	"github.com/samber/lo"
)

// Attribute is a free-form key/value pair. Encrypted attributes are private:
// they are sealed in the published document and withheld from views that do
// not include private data.
type Attribute struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Encrypted bool   `json:"isEncrypted"`
}

// Metadata is the structured document attached to a certificate plus its
// anchors in content storage and on the ledger.
type Metadata struct {
	Description string         `json:"description,omitempty"`
	Attributes  []Attribute    `json:"attributes,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`

	ContentAddress string `json:"contentAddress,omitempty"`
	ContentURI     string `json:"contentUri,omitempty"`
	TransactionID  string `json:"transactionId,omitempty"`
	Network        string `json:"network,omitempty"`
}

// Public returns a copy without encrypted attributes.
func (m Metadata) Public() Metadata {
	out := m
	out.Attributes = lo.Filter(m.Attributes, func(a Attribute, _ int) bool {
		return !a.Encrypted
	})
	return out
}

// HasPrivate reports whether any attribute is flagged encrypted.
func (m Metadata) HasPrivate() bool {
	return lo.SomeBy(m.Attributes, func(a Attribute) bool { return a.Encrypted })
}
