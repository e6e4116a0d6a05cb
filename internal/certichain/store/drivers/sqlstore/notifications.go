package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/jmoiron/sqlx"
)

type notificationRow struct {
	ID          string    `db:"id"`
	RecipientID string    `db:"recipient_id"`
	Kind        string    `db:"kind"`
	Payload     string    `db:"payload"`
	Read        bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}

type notificationsRepo struct {
	q sqlx.ExtContext
	d Dialect
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("sqlstore: encode payload: %w", err)
	}

	_, err = r.q.ExecContext(ctx, r.q.Rebind(`
		INSERT INTO notifications (id, recipient_id, kind, payload, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		n.ID, n.RecipientID, string(n.Kind), string(payload), n.Read, n.CreatedAt.UTC())
	return r.d.mapWriteErr(err)
}

func (r *notificationsRepo) ListNotifications(
	ctx context.Context,
	recipientID string,
	unreadOnly bool,
	limit int,
) ([]domain.Notification, error) {
	query := `
		SELECT id, recipient_id, kind, payload, is_read, created_at
		FROM notifications WHERE recipient_id = ?`
	if unreadOnly {
		query += ` AND is_read = ?`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`

	args := []any{recipientID}
	if unreadOnly {
		args = append(args, false)
	}
	args = append(args, clampLimit(limit, 50, 200))

	var rows []notificationRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		var payload map[string]string
		if err := json.Unmarshal([]byte(row.Payload), &payload); err != nil {
			return nil, fmt.Errorf("sqlstore: decode payload of %s: %w", row.ID, err)
		}
		out = append(out, domain.Notification{
			ID:          row.ID,
			RecipientID: row.RecipientID,
			Kind:        domain.NotificationKind(row.Kind),
			Payload:     payload,
			Read:        row.Read,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id, recipientID string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`
		UPDATE notifications SET is_read = ? WHERE id = ? AND recipient_id = ?`),
		true, id, recipientID)
	return expectOne(res, err)
}
