package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/jmoiron/sqlx"
)

type institutionRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Website   string    `db:"website"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row institutionRow) domain() domain.Institution {
	return domain.Institution{
		ID:        row.ID,
		Name:      row.Name,
		Website:   row.Website,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

type institutionsRepo struct {
	q sqlx.ExtContext
	d Dialect
}

func (r *institutionsRepo) GetInstitutionByID(ctx context.Context, id string) (domain.Institution, error) {
	var row institutionRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(`
		SELECT id, name, website, created_at, updated_at
		FROM institutions WHERE id = ?`), id)
	if err != nil {
		return domain.Institution{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *institutionsRepo) CreateInstitution(ctx context.Context, inst domain.Institution) error {
	_, err := r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO institutions (id, name, website, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`),
		inst.ID, inst.Name, inst.Website, inst.CreatedAt.UTC(), inst.UpdatedAt.UTC())
	return r.d.mapWriteErr(err)
}

func (r *institutionsRepo) SearchInstitutions(
	ctx context.Context,
	query string,
	limit int,
) ([]domain.Institution, error) {
	var rows []institutionRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT id, name, website, created_at, updated_at
		FROM institutions
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY name, id
		LIMIT ?`), containsPattern(query), clampLimit(limit, 20, 100))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Institution, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *institutionsRepo) ListAdministrators(ctx context.Context, institutionID string) ([]domain.Identity, error) {
	var rows []identityRow
	err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(`
		SELECT `+identityColumns+` FROM identities
		WHERE role = 'INSTITUTION' AND institution_id = ?
		ORDER BY created_at, id`), institutionID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Identity, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.domain())
	}
	return out, nil
}
