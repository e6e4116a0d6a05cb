package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/jmoiron/sqlx"
)

const identityColumns = `id, wallet_address, role, display_name, email, institution_id, created_at, updated_at`

type identityRow struct {
	ID            string         `db:"id"`
	WalletAddress string         `db:"wallet_address"`
	Role          string         `db:"role"`
	DisplayName   string         `db:"display_name"`
	Email         sql.NullString `db:"email"`
	InstitutionID sql.NullString `db:"institution_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (row identityRow) domain() domain.Identity {
	return domain.Identity{
		ID:            row.ID,
		WalletAddress: row.WalletAddress,
		Role:          domain.Role(row.Role),
		DisplayName:   row.DisplayName,
		Email:         mapNullString(row.Email),
		InstitutionID: mapNullString(row.InstitutionID),
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

type identitiesRepo struct {
	q sqlx.ExtContext
	d Dialect
}

func (r *identitiesRepo) getBy(ctx context.Context, column, value string) (domain.Identity, error) {
	var row identityRow
	query := r.q.Rebind(`SELECT ` + identityColumns + ` FROM identities WHERE ` + column + ` = ?`)
	if err := sqlx.GetContext(ctx, r.q, &row, query, value); err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	return r.getBy(ctx, "id", id)
}

func (r *identitiesRepo) GetIdentityByWallet(ctx context.Context, wallet string) (domain.Identity, error) {
	return r.getBy(ctx, "wallet_address", wallet)
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	return r.getBy(ctx, "email", email)
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, id domain.Identity) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO identities (`+identityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id.ID,
		id.WalletAddress,
		string(id.Role),
		id.DisplayName,
		mapStringNull(id.Email),
		mapStringNull(id.InstitutionID),
		id.CreatedAt.UTC(),
		id.UpdatedAt.UTC(),
	)
	return r.d.mapWriteErr(err)
}

func (r *identitiesRepo) UpdateIdentity(ctx context.Context, id domain.Identity) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE identities
		SET role = ?, display_name = ?, email = ?, institution_id = ?, updated_at = ?
		WHERE id = ?`),
		string(id.Role),
		id.DisplayName,
		mapStringNull(id.Email),
		mapStringNull(id.InstitutionID),
		id.UpdatedAt.UTC(),
		id.ID,
	)
	return expectOne(res, r.d.mapWriteErr(err))
}

func (r *identitiesRepo) SearchStudents(
	ctx context.Context,
	query, institutionID string,
	limit int,
) ([]domain.Identity, error) {
	pattern := containsPattern(query)

	sqlText := `
		SELECT ` + identityColumns + ` FROM identities
		WHERE role = 'STUDENT'
		  AND (LOWER(display_name) LIKE ? ESCAPE '\'
		    OR LOWER(COALESCE(email, '')) LIKE ? ESCAPE '\'
		    OR LOWER(wallet_address) LIKE ? ESCAPE '\')`
	args := []any{pattern, pattern, pattern}

	if institutionID != "" {
		sqlText += `
		  AND EXISTS (
		    SELECT 1 FROM certificates c
		    WHERE c.recipient_id = identities.id AND c.institution_id = ?)`
		args = append(args, institutionID)
	}

	sqlText += ` ORDER BY display_name, id LIMIT ?`
	args = append(args, clampLimit(limit, 20, 100))

	var rows []identityRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(sqlText), args...); err != nil {
		return nil, err
	}

	out := make([]domain.Identity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}
