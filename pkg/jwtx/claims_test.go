package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"certichain", "verify"}},
	}

	require.NoError(t, c.ValidateAudience([]string{"verify"}))
	require.NoError(t, c.ValidateAudience(nil))
	require.ErrorIs(t, c.ValidateAudience([]string{"billing"}), jwtx.ErrAudience)
}

func TestValidateExpiryWithLeeway(t *testing.T) {
	now := time.Now().UTC()
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second)),
		},
	}

	require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	require.NoError(t, c.ValidateExpiryWithLeeway(time.Minute))

	c.ExpiresAt = jwt.NewNumericDate(now.Add(time.Hour))
	c.NotBefore = jwt.NewNumericDate(now.Add(time.Hour))
	require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
}
