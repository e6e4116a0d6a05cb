package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/rand/v2"

	"github.com/aussiebroadwan/certichain/pkg/cryptox"
)

// KeyManager owns the signing keys of a single instance together with the
// matching verifier and the KeySet published over JWKS.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures an ephemeral KeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// NumKeys defaults to 2, capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates Ed25519 keys that only live in memory.
// Sessions do not survive a restart, wallets simply sign in again.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 2
	}
	numKeys = min(numKeys, 10)

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)

	for i := range numKeys {
		kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key id: %w", err)
		}

		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}

		signer, err := NewSignerEdDSA("certichain-"+kid, pemKey)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load key %d: %w", i+1, err)
		}

		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: add key %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// NewKeyManagerFromPEM uses a single long-lived Ed25519 key, so sessions
// survive restarts. The key id is derived from the public key and is stable.
func NewKeyManagerFromPEM(pemKey []byte, opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	signer, err := NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(signer.pub)
	signer.kid = "certichain-" + base64.RawURLEncoding.EncodeToString(sum[:12])

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add key to keyset: %w", err)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  []Signer{signer},
	}, nil
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns a randomly selected signer.
func (km *KeyManager) GetSigner() Signer {
	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}
