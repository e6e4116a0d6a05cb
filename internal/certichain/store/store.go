package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it and expose sub-repositories, a transaction scoped
// Store cannot start another transaction.
type Store interface {
	Identities() Identities
	Institutions() Institutions
	Certificates() Certificates
	Shares() Shares
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Page bounds a listing query.
type Page struct {
	Limit  int
	Offset int
}

type Identities interface {
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)
	GetIdentityByWallet(ctx context.Context, wallet string) (domain.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// CreateIdentity inserts a new identity; a duplicate wallet or email
	// fails with ErrAlreadyExists.
	CreateIdentity(ctx context.Context, id domain.Identity) error

	// UpdateIdentity overwrites role, display name, email and institution,
	// and bumps updated_at.
	UpdateIdentity(ctx context.Context, id domain.Identity) error

	// SearchStudents matches display name, email or wallet by substring. With
	// institutionID set only students holding a certificate from it match.
	SearchStudents(ctx context.Context, query, institutionID string, limit int) ([]domain.Identity, error)
}

type Institutions interface {
	GetInstitutionByID(ctx context.Context, id string) (domain.Institution, error)
	CreateInstitution(ctx context.Context, inst domain.Institution) error

	// SearchInstitutions is a case-insensitive substring match on name.
	SearchInstitutions(ctx context.Context, query string, limit int) ([]domain.Institution, error)

	// ListAdministrators returns the INSTITUTION identities bound to id.
	ListAdministrators(ctx context.Context, institutionID string) ([]domain.Identity, error)
}

type Certificates interface {
	// CreateCertificate inserts the row; a reused mint address fails with
	// ErrAlreadyExists.
	CreateCertificate(ctx context.Context, c domain.Certificate) error

	GetCertificateByID(ctx context.Context, id string) (domain.Certificate, error)
	GetCertificateByMint(ctx context.Context, mintAddress string) (domain.Certificate, error)

	// ListByRecipient and ListByIssuer return newest first with the total count.
	ListByRecipient(ctx context.Context, recipientID string, page Page) ([]domain.Certificate, int, error)
	ListByIssuer(ctx context.Context, issuerID string, page Page) ([]domain.Certificate, int, error)
}

type Shares interface {
	CreateShare(ctx context.Context, s domain.Share) error
	GetShareByID(ctx context.Context, id string) (domain.Share, error)
	GetShareByTokenHash(ctx context.Context, hash string) (domain.Share, error)
	ListSharesByOwner(ctx context.Context, ownerID string) ([]domain.Share, error)

	// MarkShareAccessed records the time of a successful token read.
	MarkShareAccessed(ctx context.Context, id string, at time.Time) error

	DeleteShare(ctx context.Context, id string) error
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]domain.Notification, error)

	// MarkNotificationRead only affects notifications owned by recipientID.
	MarkNotificationRead(ctx context.Context, id, recipientID string) error
}
