package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/notify"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aussiebroadwan/certichain/pkg/idx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

const (
	DefaultShareDays = 7
	MaxShareDays     = 365
)

type CreateShareInput struct {
	CertificateID  string
	RecipientEmail string
	ExpiryDays     *int
	IncludePrivate bool
}

// CreatedShare holds the only copy of the raw token.
type CreatedShare struct {
	Share domain.Share
	Token string
	URL   string
}

type ShareService struct {
	Store      store.Store
	Dispatcher notify.Dispatcher
	PublicURL  string
	// DefaultDays applies when a request omits expiryDays.
	DefaultDays int
	Now         func() time.Time
}

func (s *ShareService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ShareURL is where a token is redeemed.
func (s *ShareService) ShareURL(token string) string {
	return strings.TrimRight(s.PublicURL, "/") + "/verify/" + token
}

// Create shares a certificate on behalf of owner, who must be its recipient
// or issuer.
func (s *ShareService) Create(ctx context.Context, owner domain.Identity, in CreateShareInput) (CreatedShare, error) {
	days := s.DefaultDays
	if days <= 0 {
		days = DefaultShareDays
	}
	if in.ExpiryDays != nil {
		days = *in.ExpiryDays
	}
	if days < 1 || days > MaxShareDays {
		return CreatedShare{}, invalid("expiryDays must be between 1 and %d", MaxShareDays)
	}

	email, err := normalizeEmail(in.RecipientEmail)
	if err != nil {
		return CreatedShare{}, err
	}

	cert, err := s.Store.Certificates().GetCertificateByID(ctx, strings.TrimSpace(in.CertificateID))
	if errors.Is(err, store.ErrNotFound) {
		return CreatedShare{}, newError(KindNotFound, nil, "certificate not found")
	}
	if err != nil {
		return CreatedShare{}, err
	}
	if cert.RecipientID != owner.ID && cert.IssuerID != owner.ID {
		return CreatedShare{}, newError(KindNotAuthorized, nil, "only the recipient or issuer can share this certificate")
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return CreatedShare{}, err
	}

	now := s.now()
	share := domain.Share{
		ID:             idx.New().String(),
		OwnerID:        owner.ID,
		CertificateID:  cert.ID,
		TokenHash:      cryptox.FingerprintToken(token),
		RecipientEmail: email,
		ExpiresAt:      now.AddDate(0, 0, days),
		IncludePrivate: in.IncludePrivate,
		CreatedAt:      now,
	}
	if err := s.Store.Shares().CreateShare(ctx, share); err != nil {
		return CreatedShare{}, err
	}

	out := CreatedShare{Share: share, Token: token, URL: s.ShareURL(token)}
	s.announce(ctx, owner, cert, out)
	return out, nil
}

// announce tells the certificate's recipient and the share's addressee.
// Best-effort.
func (s *ShareService) announce(ctx context.Context, owner domain.Identity, cert domain.Certificate, cs CreatedShare) {
	ctx = context.WithoutCancel(ctx)
	log := slogx.FromContext(ctx)

	if cert.RecipientID != owner.ID {
		err := s.Store.Notifications().CreateNotification(ctx, domain.Notification{
			ID:          idx.New().String(),
			RecipientID: cert.RecipientID,
			Kind:        domain.NotificationCertificateShared,
			Payload:     map[string]string{"certificateId": cert.ID, "title": cert.Title, "shareId": cs.Share.ID},
			CreatedAt:   cs.Share.CreatedAt,
		})
		if err != nil {
			log.Warn("failed to record share notification", slog.String("share_id", cs.Share.ID), slog.Any("err", err))
		}
	}

	if s.Dispatcher == nil || cs.Share.RecipientEmail == "" {
		return
	}
	sender := owner.DisplayName
	if sender == "" {
		sender = owner.WalletAddress
	}
	err := s.Dispatcher.Dispatch(ctx, notify.Message{
		ID:      idx.New().String(),
		Kind:    notify.KindCertificateShared,
		To:      cs.Share.RecipientEmail,
		Subject: sender + " shared a certificate with you",
		Data: map[string]string{
			"title":     cert.Title,
			"shareUrl":  cs.URL,
			"expiresAt": cs.Share.ExpiresAt.Format(time.RFC3339),
		},
		CreatedAt: cs.Share.CreatedAt,
	})
	if err != nil {
		log.Warn("failed to dispatch share email", slog.String("share_id", cs.Share.ID), slog.Any("err", err))
	}
}

func (s *ShareService) List(ctx context.Context, owner domain.Identity) ([]domain.Share, error) {
	return s.Store.Shares().ListSharesByOwner(ctx, owner.ID)
}

// Revoke deletes a share. Only its owner may revoke it.
func (s *ShareService) Revoke(ctx context.Context, owner domain.Identity, shareID string) error {
	share, err := s.Store.Shares().GetShareByID(ctx, shareID)
	if errors.Is(err, store.ErrNotFound) {
		return newError(KindNotFound, nil, "share not found")
	}
	if err != nil {
		return err
	}
	if share.OwnerID != owner.ID {
		return newError(KindNotAuthorized, nil, "share belongs to another identity")
	}

	err = s.Store.Shares().DeleteShare(ctx, share.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
