// Package ledger anchors certificate content addresses on Solana. A mint
// creates a fresh program-owned account whose address identifies the asset.
package ledger

import (
	"context"
	"errors"
)

var (
	// ErrRejected covers every failed mint: invalid signer, insufficient fee
	// balance, network partition or a failed confirmation. Mints are never
	// retried here.
	ErrRejected = errors.New("ledger: mint rejected")

	ErrInvalidAddress = errors.New("ledger: invalid wallet address")
)

// MintRequest describes the asset to create.
type MintRequest struct {
	// Owner is the recipient wallet the asset is associated with.
	Owner string

	Title          string
	ContentAddress string
	ContentURI     string
}

// MintResult identifies the confirmed asset.
type MintResult struct {
	MintAddress   string
	TransactionID string
	Network       string
}

// Minter creates on-chain assets. Mint must return only after the
// transaction is confirmed.
type Minter interface {
	Mint(ctx context.Context, req MintRequest) (MintResult, error)

	// Ping reports whether the ledger is reachable.
	Ping(ctx context.Context) error
}
