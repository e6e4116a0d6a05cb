package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/idx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

const maxDisplayName = 120

// IdentityService is the identity directory, keyed by wallet address.
type IdentityService struct {
	Store store.Store
	Now   func() time.Time
}

// UpsertIdentityInput carries the fields of an upsert. Empty fields keep the
// stored value; an empty Role creates a STUDENT. Actor is the session wallet
// making the change and defaults to WalletAddress.
type UpsertIdentityInput struct {
	Actor         string
	WalletAddress string
	Role          string
	DisplayName   string
	Email         string
	InstitutionID string
}

func (s *IdentityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func parseWallet(wallet string) (string, error) {
	pk, err := ledger.ParseAddress(wallet)
	if err != nil {
		return "", newError(KindInvalidRequest, ErrInvalidAddress, "invalid wallet address %q", wallet)
	}
	return pk.String(), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("invalid email address %q", email)
	}
	return email, nil
}

// Resolve returns the identity bound to wallet.
func (s *IdentityService) Resolve(ctx context.Context, wallet string) (domain.Identity, error) {
	wallet, err := parseWallet(wallet)
	if err != nil {
		return domain.Identity{}, err
	}
	return resolveIdentity(ctx, s.Store, wallet, ErrIdentityNotFound)
}

func resolveIdentity(ctx context.Context, st store.Store, wallet string, reason error) (domain.Identity, error) {
	id, err := st.Identities().GetIdentityByWallet(ctx, wallet)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, newError(KindNotFound, reason, "%s: %s", reason, wallet)
	}
	return id, err
}

// FindByEmail is the lookup counterpart of Resolve.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (domain.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.Identity{}, err
	}
	if email == "" {
		return domain.Identity{}, invalid("email is required")
	}

	id, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Identity{}, newError(KindNotFound, ErrIdentityNotFound, "no identity with email %s", email)
	}
	return id, err
}

// Upsert creates the identity on first reference and updates it afterwards.
// Assuming the INSTITUTION role requires an existing institution, and joining
// an institution that has administrators requires one of them as Actor. An
// administrator may enroll another wallet but not edit its profile.
func (s *IdentityService) Upsert(ctx context.Context, in UpsertIdentityInput) (domain.Identity, error) {
	wallet, err := parseWallet(in.WalletAddress)
	if err != nil {
		return domain.Identity{}, err
	}

	actor := wallet
	if in.Actor != "" {
		if actor, err = parseWallet(in.Actor); err != nil {
			return domain.Identity{}, err
		}
	}

	var role domain.Role
	if in.Role != "" {
		if role, err = domain.ParseRole(in.Role); err != nil {
			return domain.Identity{}, invalid("%v", err)
		}
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.Identity{}, err
	}

	name := strings.TrimSpace(in.DisplayName)
	if len(name) > maxDisplayName {
		return domain.Identity{}, invalid("displayName exceeds %d characters", maxDisplayName)
	}

	if actor != wallet && (role != domain.RoleInstitution || name != "" || email != "") {
		return domain.Identity{}, newError(KindNotAuthorized, nil, "an identity can only be changed by its own wallet")
	}

	now := s.now()
	var out domain.Identity

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Identities().GetIdentityByWallet(ctx, wallet)
		exists := err == nil
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		next := current
		if !exists {
			next = domain.Identity{
				ID:            idx.New().String(),
				WalletAddress: wallet,
				Role:          domain.RoleStudent,
				CreatedAt:     now,
			}
		}
		if role != "" {
			next.Role = role
		}
		if name != "" {
			next.DisplayName = name
		}
		if email != "" {
			next.Email = email
		}
		next.UpdatedAt = now

		if next.Role != domain.RoleInstitution {
			next.InstitutionID = ""
		} else {
			instID := strings.TrimSpace(in.InstitutionID)
			if instID == "" {
				instID = next.InstitutionID
			}
			if instID == "" {
				return invalid("institutionId is required for role INSTITUTION")
			}
			if _, err := tx.Institutions().GetInstitutionByID(ctx, instID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return newError(KindNotFound, ErrUnknownInstitution, "unknown institution %s", instID)
				}
				return err
			}
			if !exists || current.Role != domain.RoleInstitution || current.InstitutionID != instID {
				if err := authorizeEnrollment(ctx, tx, actor, instID); err != nil {
					return err
				}
			}
			next.InstitutionID = instID
		}

		if exists {
			err = tx.Identities().UpdateIdentity(ctx, next)
		} else {
			err = tx.Identities().CreateIdentity(ctx, next)
		}
		if errors.Is(err, store.ErrAlreadyExists) {
			return newError(KindInvalidRequest, ErrEmailTaken, "email %s is already in use", email)
		}
		if err != nil {
			return err
		}

		out = next
		if !exists {
			slogx.FromContext(ctx).Info("identity created",
				slog.String("identity_id", next.ID),
				slog.String("wallet", wallet),
				slog.String("role", next.Role.String()),
			)
		}
		return nil
	})
	return out, err
}

// authorizeEnrollment admits actor to bind a wallet to instID. An institution
// without administrators accepts anyone.
func authorizeEnrollment(ctx context.Context, tx store.Tx, actor, instID string) error {
	admins, err := tx.Institutions().ListAdministrators(ctx, instID)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return nil
	}
	for _, a := range admins {
		if a.WalletAddress == actor {
			return nil
		}
	}
	return newError(KindNotAuthorized, ErrNotAdministrator, "%s is not an administrator of institution %s", actor, instID)
}

// UpdateProfile changes the settings of the identity bound to wallet. Nil
// fields are left alone; an empty email clears it.
func (s *IdentityService) UpdateProfile(ctx context.Context, wallet string, displayName, email *string) (domain.Identity, error) {
	current, err := s.Resolve(ctx, wallet)
	if err != nil {
		return domain.Identity{}, err
	}

	next := current
	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		if len(name) > maxDisplayName {
			return domain.Identity{}, invalid("displayName exceeds %d characters", maxDisplayName)
		}
		next.DisplayName = name
	}
	if email != nil {
		if next.Email, err = normalizeEmail(*email); err != nil {
			return domain.Identity{}, err
		}
	}
	next.UpdatedAt = s.now()

	err = s.Store.Identities().UpdateIdentity(ctx, next)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Identity{}, newError(KindInvalidRequest, ErrEmailTaken, "email %s is already in use", next.Email)
	}
	if err != nil {
		return domain.Identity{}, err
	}
	return next, nil
}

// SearchRecipients finds students an institution can issue to. With
// institutionID set only students already holding one of its certificates
// match.
func (s *IdentityService) SearchRecipients(ctx context.Context, query, institutionID string, limit int) ([]domain.Identity, error) {
	return s.Store.Identities().SearchStudents(ctx, strings.TrimSpace(query), strings.TrimSpace(institutionID), limit)
}

// UpsertStudent registers a recipient by wallet. An existing identity keeps
// its role.
func (s *IdentityService) UpsertStudent(ctx context.Context, wallet, displayName, email string) (domain.Identity, error) {
	return s.Upsert(ctx, UpsertIdentityInput{WalletAddress: wallet, DisplayName: displayName, Email: email})
}
