package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
)

// sessionWallet is the wallet of the verified bearer token. Routes that call
// it are behind AuthnMiddleware.
func sessionWallet(r *http.Request) string {
	w, _ := httpx.WalletFromContext(r.Context())
	return w
}

// actingIdentity resolves the session wallet to its registered identity.
func actingIdentity(r *http.Request, ids *service.IdentityService) (domain.Identity, error) {
	return ids.Resolve(r.Context(), sessionWallet(r))
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
