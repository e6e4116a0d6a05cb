package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

type shareEnv struct {
	*env
	cert   domain.Certificate
	shares *service.ShareService
	verify *service.VerificationService
}

func newShareEnv(t *testing.T) *shareEnv {
	t.Helper()
	e := newEnv(t)

	cert, err := e.issuance.Issue(context.Background(), e.degreeRequest())
	require.NoError(t, err)

	return &shareEnv{
		env:  e,
		cert: cert,
		shares: &service.ShareService{
			Store:      e.store,
			Dispatcher: e.dispatcher,
			PublicURL:  "https://certichain.example/",
			Now:        e.clock,
		},
		verify: &service.VerificationService{Store: e.store, Now: e.clock},
	}
}

func TestVerify_IDAndMintAreOneEntity(t *testing.T) {
	e := newShareEnv(t)
	ctx := context.Background()

	byID, err := e.verify.VerifyByID(ctx, e.cert.ID)
	require.NoError(t, err)
	byMint, err := e.verify.VerifyByMint(ctx, e.cert.MintAddress)
	require.NoError(t, err)

	require.Equal(t, byID, byMint)
	require.Equal(t, e.cert.ID, byMint.Certificate.ID)
	require.Equal(t, "Stanford", byMint.Certificate.InstitutionName)
	require.Equal(t, e.recipient.WalletAddress, byMint.Certificate.Recipient.WalletAddress)

	require.Len(t, byID.Certificate.Metadata.Attributes, 1, "anonymous lookups hide encrypted attributes")
	require.Equal(t, "major", byID.Certificate.Metadata.Attributes[0].Key)

	_, err = e.verify.VerifyByMint(ctx, newWallet(t))
	requireKind(t, err, service.KindNotFound)
	_, err = e.verify.VerifyByID(ctx, "")
	requireKind(t, err, service.KindInvalidRequest)
}

func TestShare_TokenLifecycle(t *testing.T) {
	e := newShareEnv(t)
	ctx := context.Background()

	created, err := e.shares.Create(ctx, e.recipient, service.CreateShareInput{
		CertificateID:  e.cert.ID,
		RecipientEmail: "HR@Example.com",
		ExpiryDays:     intPtr(7),
	})
	require.NoError(t, err)
	require.Equal(t, "https://certichain.example/verify/"+created.Token, created.URL)
	require.Equal(t, t0.AddDate(0, 0, 7), created.Share.ExpiresAt)
	require.Equal(t, "hr@example.com", created.Share.RecipientEmail)

	stored, err := e.store.Shares().GetShareByID(ctx, created.Share.ID)
	require.NoError(t, err)
	require.Equal(t, cryptox.FingerprintToken(created.Token), stored.TokenHash)
	require.NotContains(t, stored.TokenHash, created.Token)

	require.Equal(t, "hr@example.com", e.dispatcher.sent[len(e.dispatcher.sent)-1].To)

	// Day 1: readable, private data withheld, access recorded.
	e.now = t0.Add(24 * time.Hour)
	v, err := e.verify.VerifyByToken(ctx, created.Token)
	require.NoError(t, err)
	require.Equal(t, e.cert.ID, v.Certificate.ID)
	for _, a := range v.Certificate.Metadata.Attributes {
		require.False(t, a.Encrypted, "encrypted attribute %q leaked", a.Key)
	}

	stored, err = e.store.Shares().GetShareByID(ctx, created.Share.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AccessedAt)
	require.True(t, stored.AccessedAt.Equal(e.now))

	// Day 8: gone, and the record is removed.
	e.now = t0.AddDate(0, 0, 8)
	_, err = e.verify.VerifyByToken(ctx, created.Token)
	requireKind(t, err, service.KindExpired)

	_, err = e.store.Shares().GetShareByID(ctx, created.Share.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = e.verify.VerifyByToken(ctx, created.Token)
	requireKind(t, err, service.KindNotFound)
}

func TestShare_IncludePrivate(t *testing.T) {
	e := newShareEnv(t)
	ctx := context.Background()

	created, err := e.shares.Create(ctx, e.recipient, service.CreateShareInput{CertificateID: e.cert.ID, IncludePrivate: true})
	require.NoError(t, err)
	require.Equal(t, t0.AddDate(0, 0, service.DefaultShareDays), created.Share.ExpiresAt)

	v, err := e.verify.VerifyByToken(ctx, created.Token)
	require.NoError(t, err)
	require.Len(t, v.Certificate.Metadata.Attributes, 2)
	require.Equal(t, "3.9", v.Certificate.Metadata.Attributes[1].Value)
}

func TestShare_Ownership(t *testing.T) {
	e := newShareEnv(t)
	ctx := context.Background()

	stranger, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: newWallet(t), Role: "EMPLOYER"})
	require.NoError(t, err)

	_, err = e.shares.Create(ctx, stranger, service.CreateShareInput{CertificateID: e.cert.ID})
	requireKind(t, err, service.KindNotAuthorized)

	// The issuer may share too; the recipient is notified.
	created, err := e.shares.Create(ctx, e.issuer, service.CreateShareInput{CertificateID: e.cert.ID})
	require.NoError(t, err)

	notes, err := e.store.Notifications().ListNotifications(ctx, e.recipient.ID, false, 10)
	require.NoError(t, err)
	kinds := make([]domain.NotificationKind, 0, len(notes))
	for _, n := range notes {
		kinds = append(kinds, n.Kind)
	}
	require.Contains(t, kinds, domain.NotificationCertificateShared)

	requireKind(t, e.shares.Revoke(ctx, e.recipient, created.Share.ID), service.KindNotAuthorized)
	require.NoError(t, e.shares.Revoke(ctx, e.issuer, created.Share.ID))
	requireKind(t, e.shares.Revoke(ctx, e.issuer, created.Share.ID), service.KindNotFound)

	_, err = e.verify.VerifyByToken(ctx, created.Token)
	requireKind(t, err, service.KindNotFound)
}

func TestShare_Validation(t *testing.T) {
	e := newShareEnv(t)
	ctx := context.Background()

	for _, days := range []int{0, -1, service.MaxShareDays + 1} {
		_, err := e.shares.Create(ctx, e.recipient, service.CreateShareInput{CertificateID: e.cert.ID, ExpiryDays: intPtr(days)})
		requireKind(t, err, service.KindInvalidRequest)
	}

	_, err := e.shares.Create(ctx, e.recipient, service.CreateShareInput{CertificateID: e.cert.ID, RecipientEmail: "not an email"})
	requireKind(t, err, service.KindInvalidRequest)

	_, err = e.shares.Create(ctx, e.recipient, service.CreateShareInput{CertificateID: "missing"})
	requireKind(t, err, service.KindNotFound)

	list, err := e.shares.List(ctx, e.recipient)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestShare_TokenIsUnguessable(t *testing.T) {
	e := newShareEnv(t)

	a, err := e.shares.Create(context.Background(), e.recipient, service.CreateShareInput{CertificateID: e.cert.ID})
	require.NoError(t, err)
	b, err := e.shares.Create(context.Background(), e.recipient, service.CreateShareInput{CertificateID: e.cert.ID})
	require.NoError(t, err)

	require.NotEqual(t, a.Token, b.Token)
	require.GreaterOrEqual(t, len(a.Token), 43)
	require.False(t, strings.ContainsAny(a.Token, "+/="))
}

func TestVerifyByToken_Malformed(t *testing.T) {
	e := newShareEnv(t)

	for _, token := range []string{"abc", "../../etc/passwd", strings.Repeat("A", 44)} {
		_, err := e.verify.VerifyByToken(context.Background(), token)
		require.ErrorIs(t, err, service.ErrNotFound, token)
	}
}
