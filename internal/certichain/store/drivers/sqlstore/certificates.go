package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/jmoiron/sqlx"
)

const certificateSelect = `
	SELECT c.id, c.title, c.type, c.recipient_id, c.issuer_id, c.institution_id,
	       c.metadata, c.mint_address, c.expiry_date, c.created_at,
	       r.wallet_address AS recipient_wallet, r.display_name AS recipient_name,
	       i.wallet_address AS issuer_wallet, i.display_name AS issuer_name,
	       inst.name AS institution_name
	FROM certificates c
	JOIN identities r ON r.id = c.recipient_id
	JOIN identities i ON i.id = c.issuer_id
	JOIN institutions inst ON inst.id = c.institution_id`

type certificateRow struct {
	ID            string       `db:"id"`
	Title         string       `db:"title"`
	Type          string       `db:"type"`
	RecipientID   string       `db:"recipient_id"`
	IssuerID      string       `db:"issuer_id"`
	InstitutionID string       `db:"institution_id"`
	Metadata      string       `db:"metadata"`
	MintAddress   string       `db:"mint_address"`
	ExpiryDate    sql.NullTime `db:"expiry_date"`
	CreatedAt     time.Time    `db:"created_at"`

	RecipientWallet string `db:"recipient_wallet"`
	RecipientName   string `db:"recipient_name"`
	IssuerWallet    string `db:"issuer_wallet"`
	IssuerName      string `db:"issuer_name"`
	InstitutionName string `db:"institution_name"`
}

func (row certificateRow) domain() (domain.Certificate, error) {
	var md domain.Metadata
	if err := json.Unmarshal([]byte(row.Metadata), &md); err != nil {
		return domain.Certificate{}, fmt.Errorf("sqlstore: decode metadata of %s: %w", row.ID, err)
	}

	return domain.Certificate{
		ID:            row.ID,
		Title:         row.Title,
		Type:          domain.CertificateType(row.Type),
		RecipientID:   row.RecipientID,
		IssuerID:      row.IssuerID,
		InstitutionID: row.InstitutionID,
		Metadata:      md,
		MintAddress:   row.MintAddress,
		ExpiryDate:    mapNullTimePtr(row.ExpiryDate),
		CreatedAt:     row.CreatedAt.UTC(),
		Recipient: domain.Party{
			ID:            row.RecipientID,
			WalletAddress: row.RecipientWallet,
			DisplayName:   row.RecipientName,
		},
		Issuer: domain.Party{
			ID:            row.IssuerID,
			WalletAddress: row.IssuerWallet,
			DisplayName:   row.IssuerName,
		},
		InstitutionName: row.InstitutionName,
	}, nil
}

type certificatesRepo struct {
	q sqlx.ExtContext
	d Dialect
}

func (r *certificatesRepo) CreateCertificate(ctx context.Context, c domain.Certificate) error {
	md, err := json.Marshal(c.Metadata)
	if err != nil {
		return fmt.Errorf("sqlstore: encode metadata: %w", err)
	}

	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO certificates (
			id, title, type, recipient_id, issuer_id, institution_id,
			metadata, content_address, transaction_id, mint_address, expiry_date, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID,
		c.Title,
		string(c.Type),
		c.RecipientID,
		c.IssuerID,
		c.InstitutionID,
		string(md),
		c.Metadata.ContentAddress,
		c.Metadata.TransactionID,
		c.MintAddress,
		mapOptionalTime(c.ExpiryDate),
		c.CreatedAt.UTC(),
	)
	return r.d.mapWriteErr(err)
}

func (r *certificatesRepo) getOne(ctx context.Context, where string, arg string) (domain.Certificate, error) {
	var row certificateRow
	if err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(certificateSelect+` WHERE `+where), arg); err != nil {
		return domain.Certificate{}, mapNotFound(err)
	}
	return row.domain()
}

func (r *certificatesRepo) GetCertificateByID(ctx context.Context, id string) (domain.Certificate, error) {
	return r.getOne(ctx, `c.id = ?`, id)
}

func (r *certificatesRepo) GetCertificateByMint(ctx context.Context, mintAddress string) (domain.Certificate, error) {
	return r.getOne(ctx, `c.mint_address = ?`, mintAddress)
}

func (r *certificatesRepo) ListByRecipient(
	ctx context.Context,
	recipientID string,
	page store.Page,
) ([]domain.Certificate, int, error) {
	return r.list(ctx, "recipient_id", recipientID, page)
}

func (r *certificatesRepo) ListByIssuer(
	ctx context.Context,
	issuerID string,
	page store.Page,
) ([]domain.Certificate, int, error) {
	return r.list(ctx, "issuer_id", issuerID, page)
}

func (r *certificatesRepo) list(
	ctx context.Context,
	column, value string,
	page store.Page,
) ([]domain.Certificate, int, error) {
	var total int
	err := sqlx.GetContext(ctx, r.q, &total,
		r.q.Rebind(`SELECT COUNT(*) FROM certificates WHERE `+column+` = ?`), value)
	if err != nil {
		return nil, 0, err
	}

	var rows []certificateRow
	err = sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(certificateSelect+`
		WHERE c.`+column+` = ?
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ? OFFSET ?`), value, clampLimit(page.Limit, 10, 100), max(page.Offset, 0))
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Certificate, 0, len(rows))
	for _, row := range rows {
		c, err := row.domain()
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, nil
}
