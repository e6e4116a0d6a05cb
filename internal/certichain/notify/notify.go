// Package notify delivers best-effort messages (emails) about certificates.
// Failures are reported to the caller, which logs and drops them.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

const (
	KindCertificateIssued = "certificate_issued"
	KindCertificateShared = "certificate_shared"
)

// Message is one email request for the mail worker.
type Message struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	To        string            `json:"to"`
	Subject   string            `json:"subject"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
	Close() error
}

// LogDispatcher only logs messages. Used when no broker is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("email dispatch skipped, no broker",
		slog.String("kind", msg.Kind),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

func (LogDispatcher) Close() error { return nil }
