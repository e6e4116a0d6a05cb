package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestAuthn(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "test", NumKeys: 1})
	require.NoError(t, err)

	var gotWallet string
	protected := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWallet, _ = httpx.WalletFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}),
		httpx.AuthnMiddleware(km.Verifier),
	)

	sign := func(role string) string {
		c := jwtx.NewSessionClaims("walletI1", role, "", time.Minute, "test", nil, time.Now().UTC())
		tok, err := km.GetSigner().Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("missing bearer", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer"))
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+sign("INSTITUTION"))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "walletI1", gotWallet)
	})
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return httpx.DecodeJSON(httptest.NewRecorder(), req, &v)
	}

	require.NoError(t, decode(`{"title":"B.Sc."}`))
	require.Equal(t, "B.Sc.", v.Title)
	require.Error(t, decode(``))
	require.Error(t, decode(`{"title":"x","extra":1}`))
	require.Error(t, decode(`{"title":"x"}{"title":"y"}`))
}
