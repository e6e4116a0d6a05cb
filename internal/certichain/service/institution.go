package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/idx"
)

type InstitutionService struct {
	Store store.Store
	Now   func() time.Time
}

// Create registers an institution with adminWallet as its first
// administrator. The wallet's identity is created when missing; a wallet that
// already administers another institution is refused.
func (s *InstitutionService) Create(ctx context.Context, adminWallet, name, website string) (domain.Institution, error) {
	adminWallet, err := parseWallet(adminWallet)
	if err != nil {
		return domain.Institution{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Institution{}, invalid("name is required")
	}
	if len(name) > 200 {
		return domain.Institution{}, invalid("name exceeds 200 characters")
	}

	website = strings.TrimSpace(website)
	if website != "" {
		u, err := url.Parse(website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return domain.Institution{}, invalid("website must be an http(s) URL")
		}
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	inst := domain.Institution{
		ID:        idx.New().String(),
		Name:      name,
		Website:   website,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		admin, err := tx.Identities().GetIdentityByWallet(ctx, adminWallet)
		exists := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if exists && admin.Role == domain.RoleInstitution && admin.InstitutionID != "" {
			return invalid("wallet %s already administers institution %s", adminWallet, admin.InstitutionID)
		}

		if err := tx.Institutions().CreateInstitution(ctx, inst); err != nil {
			return err
		}

		admin.Role = domain.RoleInstitution
		admin.InstitutionID = inst.ID
		admin.UpdatedAt = now
		if exists {
			return tx.Identities().UpdateIdentity(ctx, admin)
		}
		admin.ID = idx.New().String()
		admin.WalletAddress = adminWallet
		admin.CreatedAt = now
		return tx.Identities().CreateIdentity(ctx, admin)
	})
	if err != nil {
		return domain.Institution{}, err
	}

	if inst.Administrators, err = s.Store.Institutions().ListAdministrators(ctx, inst.ID); err != nil {
		return domain.Institution{}, err
	}
	return inst, nil
}

// Get returns the institution with its administrators.
func (s *InstitutionService) Get(ctx context.Context, id string) (domain.Institution, error) {
	inst, err := s.Store.Institutions().GetInstitutionByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Institution{}, newError(KindNotFound, ErrUnknownInstitution, "unknown institution %s", id)
	}
	if err != nil {
		return domain.Institution{}, err
	}

	if inst.Administrators, err = s.Store.Institutions().ListAdministrators(ctx, id); err != nil {
		return domain.Institution{}, err
	}
	return inst, nil
}

func (s *InstitutionService) Search(ctx context.Context, query string, limit int) ([]domain.Institution, error) {
	found, err := s.Store.Institutions().SearchInstitutions(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		return nil, err
	}

	for i := range found {
		if found[i].Administrators, err = s.Store.Institutions().ListAdministrators(ctx, found[i].ID); err != nil {
			return nil, err
		}
	}
	return found, nil
}
