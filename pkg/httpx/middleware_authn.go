package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

// AuthnMiddleware admits requests carrying a valid wallet session. The
// wallet is stored in the context and added to the request logger.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				slogx.FromContext(r.Context()).Warn("session rejected", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}
			if claims.Subject == "" {
				writeBearerError(w, "token has no wallet subject")
				return
			}

			ctx := slogx.With(WithClaims(r.Context(), claims), "wallet", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeBearerError follows RFC 6750.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", desc)
}
