package httpx

import (
	"context"

	"github.com/aussiebroadwan/certichain/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyWallet ctxKey = "wallet"
	CtxKeyClaims ctxKey = "claims"
)

// WalletFromContext returns the authenticated wallet address, if any.
func WalletFromContext(ctx context.Context) (string, bool) {
	w, ok := ctx.Value(CtxKeyWallet).(string)
	return w, ok && w != ""
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// WithClaims injects verified claims, used by the authn middleware and tests.
func WithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyWallet, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
