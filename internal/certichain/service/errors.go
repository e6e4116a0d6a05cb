package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
)

// Kind is the stable, caller-facing class of a failure. A Kind is itself an
// error so errors.Is(err, KindNotFound) matches any *Error of that kind.
type Kind string

const (
	KindInvalidRequest         Kind = "invalid_request"
	KindNotFound               Kind = "not_found"
	KindNotAuthorized          Kind = "not_authorized"
	KindUpstreamUnavailable    Kind = "upstream_unavailable"
	KindReconciliationRequired Kind = "reconciliation_required"
	KindExpired                Kind = "expired"
)

func (k Kind) Error() string { return string(k) }

var (
	ErrInvalidRequest         error = KindInvalidRequest
	ErrNotFound               error = KindNotFound
	ErrNotAuthorized          error = KindNotAuthorized
	ErrUpstreamUnavailable    error = KindUpstreamUnavailable
	ErrReconciliationRequired error = KindReconciliationRequired
	ErrExpired                error = KindExpired
)

// Reasons, reachable with errors.Is through the *Error that carries them.
var (
	ErrInvalidAddress     = ledger.ErrInvalidAddress
	ErrLedgerRejected     = ledger.ErrRejected
	ErrUnknownInstitution = errors.New("unknown institution")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrIssuerNotFound     = errors.New("issuer not found")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotAdministrator   = errors.New("not an institution administrator")
	ErrInvalidChallenge   = errors.New("challenge not found or expired")
	ErrInvalidSignature   = errors.New("signature does not match wallet")
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

func invalid(format string, args ...any) *Error {
	return newError(KindInvalidRequest, nil, format, args...)
}

// ReconciliationError reports a minted asset without a local record. The
// ledger side cannot be undone, so the anchors are carried for repair.
type ReconciliationError struct {
	MintAddress    string
	TransactionID  string
	ContentAddress string
	Err            error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("asset %s minted in %s but the certificate was not recorded: %v",
		e.MintAddress, e.TransactionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }

func (e *ReconciliationError) Is(target error) bool {
	return target == KindReconciliationRequired
}

// KindOf returns the kind carried by err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var re *ReconciliationError
	if errors.As(err, &re) {
		return KindReconciliationRequired
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
