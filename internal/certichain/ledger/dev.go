package ledger

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"
)

// DevMinter mints without a network. Each asset gets a fresh keypair and the
// transaction id is that key's signature over the content address, so both
// values have the real on-chain shape.
type DevMinter struct {
	minted atomic.Int64
}

func NewDevMinter() *DevMinter { return &DevMinter{} }

func (m *DevMinter) Mint(ctx context.Context, req MintRequest) (MintResult, error) {
	if err := ctx.Err(); err != nil {
		return MintResult{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if _, err := ParseAddress(req.Owner); err != nil {
		return MintResult{}, fmt.Errorf("%w: owner: %v", ErrRejected, err)
	}

	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: generate mint key: %v", ErrRejected, err)
	}

	sig, err := mint.Sign([]byte(req.ContentAddress))
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: sign: %v", ErrRejected, err)
	}

	m.minted.Add(1)
	return MintResult{
		MintAddress:   mint.PublicKey().String(),
		TransactionID: sig.String(),
		Network:       "dev",
	}, nil
}

func (m *DevMinter) Ping(context.Context) error { return nil }

// Minted returns how many assets were minted since start.
func (m *DevMinter) Minted() int64 { return m.minted.Load() }
