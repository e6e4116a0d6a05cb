package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleInstitution Role = "INSTITUTION"
	RoleEmployer    Role = "EMPLOYER"
)

// ParseRole accepts the canonical upper-case names, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstitution, RoleEmployer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity is keyed by its wallet address. InstitutionID is set iff the
// role is INSTITUTION.
type Identity struct {
	ID            string
	WalletAddress string
	Role          Role
	DisplayName   string
	Email         string // empty when unknown, unique otherwise
	InstitutionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Party is the public projection of an Identity embedded into certificate
// views.
type Party struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	DisplayName   string `json:"displayName,omitempty"`
}
