package ledger

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ParseAddress validates a base58 ed25519 public key.
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}

	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return pk, nil
}

// ValidAddress reports whether s is a syntactically valid wallet address.
func ValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}

// VerifyWalletSignature checks a base58 ed25519 signature of message made by
// the wallet's key.
func VerifyWalletSignature(wallet string, message []byte, signature string) (bool, error) {
	pk, err := ParseAddress(wallet)
	if err != nil {
		return false, err
	}

	sig, err := solana.SignatureFromBase58(strings.TrimSpace(signature))
	if err != nil {
		return false, fmt.Errorf("ledger: invalid signature encoding: %w", err)
	}

	return sig.Verify(pk, message), nil
}
