package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/metadata"
	"github.com/aussiebroadwan/certichain/internal/certichain/metrics"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"

	_ "github.com/aussiebroadwan/certichain/api/certichain" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store     store.Store
	minter    ledger.Minter
	publisher metadata.Publisher
	metrics   *metrics.Metrics

	AuthService         *service.AuthService
	IdentityService     *service.IdentityService
	InstitutionService  *service.InstitutionService
	IssuanceService     *service.IssuanceService
	CertificateService  *service.CertificateService
	VerificationService *service.VerificationService
	ShareService        *service.ShareService
	NotificationService *service.NotificationService
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	minter ledger.Minter,
	publisher metadata.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		minter:       minter,
		publisher:    publisher,
		metrics:      m,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerIdentities()
	r.registerInstitutions()
	r.registerCertificates()
	r.registerVerify()
	r.registerShares()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CertiChain API
//	@version		0.1.0
//	@description	Issues academic and professional certificates anchored on a public ledger, verifies them and shares them through expiring links.
//	@description
//	@description				Wallets sign in with an ed25519 challenge. Session tokens are EdDSA JWTs verifiable through the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/certichain
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Wallet session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps h with bearer verification and a per-wallet rate limit.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RateLimitByWallet(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Sign-in attempts - strict rate limit by IP (nonce and signature guessing)
	r.Mux.Handle("POST /v1/auth/challenge",
		httpx.Chain(http.HandlerFunc(h.HandleChallenge),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/token",
		httpx.Chain(http.HandlerFunc(h.HandleToken),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerIdentities() {
	h := &IdentityHandler{IdentityService: r.IdentityService}

	r.Mux.Handle("POST /v1/identities", r.authed(h.HandleUpsert, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/identities", r.authed(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/identities/me", r.authed(h.HandleUpdateMe, httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/recipients", r.authed(h.HandleSearchRecipients, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/recipients", r.authed(h.HandleCreateRecipient, httpx.ModerateLimit))
}

func (r *Router) registerInstitutions() {
	h := &InstitutionHandler{InstitutionService: r.InstitutionService}

	r.Mux.Handle("POST /v1/institutions", r.authed(h.HandleCreate, httpx.ModerateLimit))

	// Institution directory is public
	r.Mux.Handle("GET /v1/institutions",
		httpx.Chain(http.HandlerFunc(h.HandleSearch),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/institutions/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerCertificates() {
	h := &CertificateHandler{
		IssuanceService:    r.IssuanceService,
		CertificateService: r.CertificateService,
	}

	// Issuance mints on the ledger - moderate rate limit by wallet
	r.Mux.Handle("POST /v1/certificates", r.authed(h.HandleIssue, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/certificates", r.authed(h.HandleList, httpx.LenientLimit))
}

func (r *Router) registerVerify() {
	h := &VerifyHandler{VerificationService: r.VerificationService}

	// Verification is anonymous - public limit by IP
	r.Mux.Handle("GET /v1/verify",
		httpx.Chain(http.HandlerFunc(h.HandleLookup),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/verify/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleToken),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerShares() {
	h := &ShareHandler{
		ShareService:    r.ShareService,
		IdentityService: r.IdentityService,
	}

	r.Mux.Handle("POST /v1/shares", r.authed(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/shares", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/shares/{id}", r.authed(h.HandleRevoke, httpx.ModerateLimit))
}

func (r *Router) registerNotifications() {
	h := &NotificationHandler{
		NotificationService: r.NotificationService,
		IdentityService:     r.IdentityService,
	}

	r.Mux.Handle("GET /v1/notifications", r.authed(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/notifications/{id}/read", r.authed(h.HandleMarkRead, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.minter, r.publisher, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
