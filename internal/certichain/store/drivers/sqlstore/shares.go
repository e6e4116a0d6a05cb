package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/jmoiron/sqlx"
)

const shareColumns = `id, owner_id, certificate_id, token_hash, recipient_email,
	expires_at, include_private, accessed_at, created_at`

type shareRow struct {
	ID             string         `db:"id"`
	OwnerID        string         `db:"owner_id"`
	CertificateID  string         `db:"certificate_id"`
	TokenHash      string         `db:"token_hash"`
	RecipientEmail sql.NullString `db:"recipient_email"`
	ExpiresAt      time.Time      `db:"expires_at"`
	IncludePrivate bool           `db:"include_private"`
	AccessedAt     sql.NullTime   `db:"accessed_at"`
	CreatedAt      time.Time      `db:"created_at"`
}

func (row shareRow) domain() domain.Share {
	return domain.Share{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		CertificateID:  row.CertificateID,
		TokenHash:      row.TokenHash,
		RecipientEmail: mapNullString(row.RecipientEmail),
		ExpiresAt:      row.ExpiresAt.UTC(),
		IncludePrivate: row.IncludePrivate,
		AccessedAt:     mapNullTimePtr(row.AccessedAt),
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

type sharesRepo struct {
	q sqlx.ExtContext
	d Dialect
}

func (r *sharesRepo) CreateShare(ctx context.Context, s domain.Share) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO shares (`+shareColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID,
		s.OwnerID,
		s.CertificateID,
		s.TokenHash,
		mapStringNull(s.RecipientEmail),
		s.ExpiresAt.UTC(),
		s.IncludePrivate,
		mapOptionalTime(s.AccessedAt),
		s.CreatedAt.UTC(),
	)
	return r.d.mapWriteErr(err)
}

func (r *sharesRepo) getBy(ctx context.Context, column, value string) (domain.Share, error) {
	var row shareRow
	query := r.q.Rebind(`SELECT ` + shareColumns + ` FROM shares WHERE ` + column + ` = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, value); err != nil {
		return domain.Share{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *sharesRepo) GetShareByID(ctx context.Context, id string) (domain.Share, error) {
	return r.getBy(ctx, "id", id)
}

func (r *sharesRepo) GetShareByTokenHash(ctx context.Context, hash string) (domain.Share, error) {
	return r.getBy(ctx, "token_hash", hash)
}

func (r *sharesRepo) ListSharesByOwner(ctx context.Context, ownerID string) ([]domain.Share, error) {
	var rows []shareRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+shareColumns+` FROM shares
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC`), ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Share, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *sharesRepo) MarkShareAccessed(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE shares SET accessed_at = ? WHERE id = ?`), at.UTC(), id)
	return expectOne(res, err)
}

func (r *sharesRepo) DeleteShare(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM shares WHERE id = ?`), id)
	return expectOne(res, err)
}
