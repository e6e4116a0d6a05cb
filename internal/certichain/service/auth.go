package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/challenge"
	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

const (
	DefaultChallengeTTL = 5 * time.Minute
	signInPreamble      = "CertiChain sign-in"
)

// SignInChallenge is what a wallet must sign to obtain a session.
type SignInChallenge struct {
	Nonce     string
	Message   string
	ExpiresAt time.Time
}

type Session struct {
	AccessToken string
	ExpiresIn   time.Duration
	Identity    *domain.Identity // nil until the wallet registers
}

// AuthService signs wallets in with a single-use challenge and issues EdDSA
// session tokens whose subject is the wallet address.
type AuthService struct {
	Store        store.Store
	Challenges   challenge.Store
	KeyManager   *jwtx.KeyManager
	Issuer       string
	Audience     []string
	ChallengeTTL time.Duration
	SessionTTL   time.Duration
	Now          func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// SignInMessage is the exact text a wallet signs.
func SignInMessage(wallet, nonce string) string {
	return signInPreamble + "\nwallet: " + wallet + "\nnonce: " + nonce
}

func (s *AuthService) Challenge(ctx context.Context, wallet string) (SignInChallenge, error) {
	wallet, err := parseWallet(wallet)
	if err != nil {
		return SignInChallenge{}, err
	}

	nonce, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return SignInChallenge{}, err
	}

	ttl := s.ChallengeTTL
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	c := challenge.Challenge{Wallet: wallet, Nonce: nonce, ExpiresAt: s.now().Add(ttl)}
	if err := s.Challenges.Put(ctx, c); err != nil {
		return SignInChallenge{}, err
	}

	return SignInChallenge{Nonce: nonce, Message: SignInMessage(wallet, nonce), ExpiresAt: c.ExpiresAt}, nil
}

// SignIn redeems a challenge. The nonce is consumed even when the signature
// is wrong.
func (s *AuthService) SignIn(ctx context.Context, wallet, nonce, signature string) (Session, error) {
	log := slogx.FromContext(ctx)

	wallet, err := parseWallet(wallet)
	if err != nil {
		return Session{}, err
	}

	c, err := s.Challenges.Take(ctx, wallet, nonce)
	if errors.Is(err, challenge.ErrNotFound) {
		return Session{}, newError(KindNotAuthorized, ErrInvalidChallenge, "challenge not found or expired")
	}
	if err != nil {
		return Session{}, err
	}

	ok, err := ledger.VerifyWalletSignature(wallet, []byte(SignInMessage(c.Wallet, c.Nonce)), signature)
	if err != nil || !ok {
		log.Info("wallet sign-in rejected", slog.String("wallet", wallet))
		return Session{}, newError(KindNotAuthorized, ErrInvalidSignature, "signature does not match wallet")
	}

	var (
		role, institutionID string
		identity            *domain.Identity
	)
	id, err := s.Store.Identities().GetIdentityByWallet(ctx, wallet)
	switch {
	case err == nil:
		role, institutionID, identity = id.Role.String(), id.InstitutionID, &id
	case !errors.Is(err, store.ErrNotFound):
		return Session{}, err
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(wallet, role, institutionID, ttl, s.Issuer, s.Audience, s.now())

	token, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		return Session{}, err
	}

	log.Info("wallet signed in", slog.String("wallet", wallet), slog.String("role", role))
	return Session{AccessToken: token, ExpiresIn: ttl, Identity: identity}, nil
}
