package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 1_000_000
)

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// CertificatePage is one page of a wallet's certificates.
type CertificatePage struct {
	Certificates []domain.Certificate
	Pagination   Pagination
}

type CertificateService struct {
	Store store.Store
}

// ListForWallet returns certificates received by students and employers and
// issued by institutions, newest first. Unknown wallets have none.
func (s *CertificateService) ListForWallet(ctx context.Context, wallet string, page, limit int) (CertificatePage, error) {
	wallet, err := parseWallet(wallet)
	if err != nil {
		return CertificatePage{}, err
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return CertificatePage{}, invalid("page exceeds %d", MaxPage)
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)

	empty := CertificatePage{Certificates: []domain.Certificate{}, Pagination: Pagination{CurrentPage: page}}

	id, err := s.Store.Identities().GetIdentityByWallet(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return CertificatePage{}, err
	}

	list := s.Store.Certificates().ListByRecipient
	if id.Role == domain.RoleInstitution {
		list = s.Store.Certificates().ListByIssuer
	}

	certs, total, err := list(ctx, id.ID, store.Page{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return CertificatePage{}, err
	}

	return CertificatePage{
		Certificates: certs,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  (total + limit - 1) / limit,
			TotalItems:  total,
		},
	}, nil
}
