// Package challenge stores single-use sign-in nonces for wallet
// authentication.
package challenge

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("challenge: not found or expired")

type Challenge struct {
	Wallet    string    `json:"wallet"`
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store keeps pending challenges. Take removes the challenge it returns, so a
// nonce can be redeemed at most once.
type Store interface {
	Put(ctx context.Context, c Challenge) error
	Take(ctx context.Context, wallet, nonce string) (Challenge, error)
}

func key(wallet, nonce string) string {
	return wallet + ":" + nonce
}
