package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/metrics"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aussiebroadwan/certichain/pkg/idx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

// Verification is the result of a lookup. Anonymous lookups and shares
// without private access never carry encrypted attributes.
type Verification struct {
	Certificate domain.Certificate
	Share       *domain.Share
	Expired     bool // the certificate's own expiry has passed
}

type VerificationService struct {
	Store   store.Store
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *VerificationService) VerifyByID(ctx context.Context, id string) (Verification, error) {
	if id = strings.TrimSpace(id); id != "" && !idx.Valid(id) {
		return Verification{}, newError(KindNotFound, nil, "certificate not found")
	}
	return s.lookup(ctx, s.Store.Certificates().GetCertificateByID, strings.TrimSpace(id))
}

func (s *VerificationService) VerifyByMint(ctx context.Context, mintAddress string) (Verification, error) {
	return s.lookup(ctx, s.Store.Certificates().GetCertificateByMint, strings.TrimSpace(mintAddress))
}

func (s *VerificationService) lookup(
	ctx context.Context,
	get func(context.Context, string) (domain.Certificate, error),
	key string,
) (Verification, error) {
	if key == "" {
		return Verification{}, invalid("certificate id or mint address is required")
	}

	cert, err := get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return Verification{}, newError(KindNotFound, nil, "certificate not found")
	}
	if err != nil {
		return Verification{}, err
	}

	cert.Metadata = cert.Metadata.Public()
	return Verification{Certificate: cert, Expired: cert.IsExpired(s.now())}, nil
}

// VerifyByToken resolves a share token. An expired share is deleted and
// reported as Expired. Every successful read records the access time.
func (s *VerificationService) VerifyByToken(ctx context.Context, token string) (Verification, error) {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return Verification{}, invalid("share token is required")
	}

	if !cryptox.WellFormedToken(token, cryptox.TokenSize256) {
		s.Metrics.ShareVerified("not_found")
		return Verification{}, newError(KindNotFound, nil, "share not found")
	}

	share, err := s.Store.Shares().GetShareByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.ShareVerified("not_found")
		return Verification{}, newError(KindNotFound, nil, "share not found")
	}
	if err != nil {
		return Verification{}, err
	}

	now := s.now()
	if share.IsExpired(now) {
		s.Metrics.ShareVerified("expired")
		if err := s.Store.Shares().DeleteShare(ctx, share.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Warn("failed to delete expired share", slog.String("share_id", share.ID), slog.Any("err", err))
		}
		return Verification{}, newError(KindExpired, nil, "share expired at %s", share.ExpiresAt.Format(time.RFC3339))
	}

	cert, err := s.Store.Certificates().GetCertificateByID(ctx, share.CertificateID)
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.ShareVerified("not_found")
		return Verification{}, newError(KindNotFound, nil, "certificate not found")
	}
	if err != nil {
		return Verification{}, err
	}

	if err := s.Store.Shares().MarkShareAccessed(ctx, share.ID, now); err != nil {
		return Verification{}, err
	}
	share.AccessedAt = &now

	if !share.IncludePrivate {
		cert.Metadata = cert.Metadata.Public()
	}

	s.Metrics.ShareVerified("ok")
	return Verification{Certificate: cert, Share: &share, Expired: cert.IsExpired(now)}, nil
}
