package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// sealedPrefix marks values produced by Sealer.Seal.
const sealedPrefix = "xc20p1."

var (
	sealerSalt = []byte("certichain/sealer/v1")
	sealerInfo = []byte("attribute sealing key")
)

var ErrNotSealed = errors.New("cryptox: value is not sealed")

// Sealer encrypts short attribute values with XChaCha20-Poly1305 under a
// single master key. Output is text safe for JSON documents:
// "xc20p1." + base64url([24-byte nonce][ciphertext+tag]).
type Sealer struct {
	key []byte
}

// NewSealer derives the cipher key from arbitrary key material with
// HKDF-SHA256.
func NewSealer(material []byte) (*Sealer, error) {
	if len(material) == 0 {
		return nil, errors.New("cryptox: empty key material")
	}
	key, err := deriveKey(material)
	if err != nil {
		return nil, err
	}
	return &Sealer{key: key}, nil
}

func deriveKey(material []byte) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, material, sealerSalt, sealerInfo), key); err != nil {
		return nil, fmt.Errorf("failed to derive sealing key: %w", err)
	}
	return key, nil
}

// LoadSealer loads the master key from path when set, otherwise from the raw
// env value. With neither set an ephemeral key is generated, sealed values
// then do not survive a restart (development only).
func LoadSealer(path, envValue string) (*Sealer, bool, error) {
	var material []byte

	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read master key file: %w", err)
		}
		material = []byte(strings.TrimSpace(string(data)))
	case envValue != "":
		material = []byte(envValue)
	default:
		material = make([]byte, 32)
		if _, err := rand.Read(material); err != nil {
			return nil, false, fmt.Errorf("failed to generate ephemeral master key: %w", err)
		}
		s, err := NewSealer(material)
		return s, true, err
	}

	s, err := NewSealer(material)
	return s, false, err
}

// Seal encrypts plaintext, binding it to aad (for example the attribute key).
func (s *Sealer) Seal(plaintext, aad []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := aead.Seal(nonce, nonce, plaintext, aad)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string, aad []byte) ([]byte, error) {
	raw, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return nil, ErrNotSealed
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode sealed value: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(data) < aead.NonceSize()+aead.Overhead() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// IsSealed reports whether v looks like a Seal output.
func IsSealed(v string) bool {
	return strings.HasPrefix(v, sealedPrefix)
}
