package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
	"github.com/aussiebroadwan/certichain/pkg/jwtx"
)

// Pinger is anything readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// readyzTimeout bounds each dependency check.
const readyzTimeout = 3 * time.Second

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe endpoint returning basic service health status, uptime, and version information
//	@Description	This endpoint always returns 200 OK if the service is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	certsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, certsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database, ledger, content storage and session signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	certsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	certsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	db, ledger, publisher Pinger,
	keys *jwtx.KeyManager,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overallStatus := "ok"
		statusCode := http.StatusOK

		check := func(p Pinger) string {
			ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
				return "error: " + err.Error()
			}
			return "ok"
		}

		checks := &certsdk.HealthChecks{
			Database:  check(db),
			Ledger:    check(ledger),
			Publisher: check(publisher),
			Signer:    "ok",
		}

		// Check if JWT signer/verifier has keys loaded
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, certsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// JWKSHandler exposes the JSON Web Key Set for public key discovery.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set session tokens are signed with.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	certsdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, certsdk.JWKSResponse(keys.PublicJWKS()))
	}
}
