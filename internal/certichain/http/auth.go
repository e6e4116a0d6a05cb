package http

import (
	"net/http"

	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/aussiebroadwan/certichain/pkg/httpx"
)

// AuthHandler serves the wallet sign-in flow.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleChallenge handles POST /v1/auth/challenge
//
//	@Summary		Request a sign-in challenge
//	@Description	Issues a single-use nonce and the exact message the wallet must sign.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		certsdk.ChallengeRequest	true	"Wallet to sign in"
//	@Success		200		{object}	certsdk.ChallengeResponse
//	@Failure		400		{object}	certsdk.ErrorResponse	"invalid wallet address"
//	@Failure		429		{object}	certsdk.ErrorResponse
//	@Router			/v1/auth/challenge [post].
func (h *AuthHandler) HandleChallenge(w http.ResponseWriter, r *http.Request) {
	var req certsdk.ChallengeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	ch, err := h.AuthService.Challenge(r.Context(), req.WalletAddress)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, certsdk.ChallengeResponse{
		Nonce:     ch.Nonce,
		Message:   ch.Message,
		ExpiresAt: ch.ExpiresAt,
	})
}

// HandleToken handles POST /v1/auth/token
//
//	@Summary		Exchange a signed challenge for a session
//	@Description	Verifies the base58 ed25519 signature of the challenge message and returns an EdDSA session token whose subject is the wallet.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		certsdk.TokenRequest	true	"Signed challenge"
//	@Success		200		{object}	certsdk.TokenResponse
//	@Failure		400		{object}	certsdk.ErrorResponse
//	@Failure		401		{object}	certsdk.ErrorResponse	"unknown nonce or bad signature"
//	@Failure		429		{object}	certsdk.ErrorResponse
//	@Router			/v1/auth/token [post].
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req certsdk.TokenRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}
	if req.Nonce == "" || req.Signature == "" {
		writeInvalid(w, "nonce and signature are required")
		return
	}

	sess, err := h.AuthService.SignIn(r.Context(), req.WalletAddress, req.Nonce, req.Signature)
	if service.KindOf(err) == service.KindNotAuthorized {
		httpx.WriteError(w, http.StatusUnauthorized, certsdk.ErrorCodeUnauthenticated, err.Error())
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := certsdk.TokenResponse{
		AccessToken: sess.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(sess.ExpiresIn.Seconds()),
	}
	if sess.Identity != nil {
		id := toIdentity(*sess.Identity)
		resp.Identity = &id
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
