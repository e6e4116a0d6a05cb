package certsdk

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net/http"

	"github.com/mr-tron/base58"
)

// SignFunc signs a sign-in message with the wallet's private key and returns
// the raw ed25519 signature.
type SignFunc func(message []byte) ([]byte, error)

// Ed25519Signer signs with a local ed25519 key, such as a Solana keypair.
func Ed25519Signer(key ed25519.PrivateKey) SignFunc {
	return func(message []byte) ([]byte, error) {
		if len(key) != ed25519.PrivateKeySize {
			return nil, errors.New("certsdk: invalid ed25519 private key")
		}
		return ed25519.Sign(key, message), nil
	}
}

// RequestChallenge asks for a single-use sign-in challenge for wallet.
func (c *Client) RequestChallenge(ctx context.Context, wallet string) (*ChallengeResponse, error) {
	return send[ChallengeResponse](ctx, c, http.MethodPost, "/v1/auth/challenge", "",
		ChallengeRequest{WalletAddress: wallet}, http.StatusOK)
}

// ExchangeToken redeems a signed challenge for a session token.
func (c *Client) ExchangeToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	return send[TokenResponse](ctx, c, http.MethodPost, "/v1/auth/token", "", req, http.StatusOK)
}

// SignIn runs the challenge flow for wallet and returns an authenticated
// Session.
func (c *Client) SignIn(ctx context.Context, wallet string, sign SignFunc) (*Session, error) {
	ch, err := c.RequestChallenge(ctx, wallet)
	if err != nil {
		return nil, err
	}

	sig, err := sign([]byte(ch.Message))
	if err != nil {
		return nil, err
	}

	tok, err := c.ExchangeToken(ctx, TokenRequest{
		WalletAddress: wallet,
		Nonce:         ch.Nonce,
		Signature:     base58.Encode(sig),
	})
	if err != nil {
		return nil, err
	}
	return newSession(c, wallet, tok), nil
}
