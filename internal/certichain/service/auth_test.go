package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/challenge"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T, e *env) (*service.AuthService, *jwtx.KeyManager) {
	t.Helper()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://certichain.test", Audience: []string{"certichain"}})
	require.NoError(t, err)

	return &service.AuthService{
		Store:      e.store,
		Challenges: challenge.NewMemoryStore(),
		KeyManager: km,
		Issuer:     "https://certichain.test",
		Audience:   []string{"certichain"},
		SessionTTL: time.Hour,
	}, km
}

func signChallenge(t *testing.T, key solana.PrivateKey, message string) string {
	t.Helper()
	sig, err := key.Sign([]byte(message))
	require.NoError(t, err)
	return sig.String()
}

func TestAuth_SignIn(t *testing.T) {
	e := newEnv(t)
	auth, km := newAuth(t, e)
	ctx := context.Background()

	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	wallet := key.PublicKey().String()

	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{
		Actor:         e.issuer.WalletAddress,
		WalletAddress: wallet,
		Role:          "INSTITUTION",
		InstitutionID: e.inst.ID,
	})
	require.NoError(t, err)

	ch, err := auth.Challenge(ctx, wallet)
	require.NoError(t, err)
	require.Equal(t, service.SignInMessage(wallet, ch.Nonce), ch.Message)

	sess, err := auth.SignIn(ctx, wallet, ch.Nonce, signChallenge(t, key, ch.Message))
	require.NoError(t, err)
	require.Equal(t, time.Hour, sess.ExpiresIn)
	require.NotNil(t, sess.Identity)

	claims, err := km.Verifier.Verify(sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, wallet, claims.Subject)
	require.Equal(t, "INSTITUTION", claims.Role)
	require.Equal(t, e.inst.ID, claims.InstitutionID)

	_, err = auth.SignIn(ctx, wallet, ch.Nonce, signChallenge(t, key, ch.Message))
	requireKind(t, err, service.KindNotAuthorized)
	require.ErrorIs(t, err, service.ErrInvalidChallenge, "nonce is single use")
}

func TestAuth_Rejections(t *testing.T) {
	e := newEnv(t)
	auth, _ := newAuth(t, e)
	ctx := context.Background()

	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	impostor, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	wallet := key.PublicKey().String()

	ch, err := auth.Challenge(ctx, wallet)
	require.NoError(t, err)

	_, err = auth.SignIn(ctx, wallet, ch.Nonce, signChallenge(t, impostor, ch.Message))
	require.ErrorIs(t, err, service.ErrInvalidSignature)

	// The failed attempt consumed the nonce.
	_, err = auth.SignIn(ctx, wallet, ch.Nonce, signChallenge(t, key, ch.Message))
	require.ErrorIs(t, err, service.ErrInvalidChallenge)

	_, err = auth.Challenge(ctx, "not-a-wallet")
	requireKind(t, err, service.KindInvalidRequest)

	// Unregistered wallets still get a session without a role.
	ch, err = auth.Challenge(ctx, wallet)
	require.NoError(t, err)
	sess, err := auth.SignIn(ctx, wallet, ch.Nonce, signChallenge(t, key, ch.Message))
	require.NoError(t, err)
	require.Nil(t, sess.Identity)
}

func TestHousekeeping_RunOnce(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	challenges := challenge.NewMemoryStore()
	challenges.Now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, challenges.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "a", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, challenges.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "b", ExpiresAt: now.Add(time.Minute)}))

	hk := service.NewHousekeepingService(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour, map[string]service.Purger{
		"challenges": challenges,
	})
	require.Equal(t, 1, hk.RunOnce(ctx))
	require.Equal(t, 1, challenges.Len())

	hk.Start()
	hk.Stop()
}
