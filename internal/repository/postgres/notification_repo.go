package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (id, recipient_id, title, message, notification_type, is_read, related_url, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.RecipientID, n.Title, n.Message, n.Type, n.IsRead, n.RelatedURL, n.CreatedAt,
	)
	return err
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int64, error) {
	query := `SELECT id, recipient_id, title, message, notification_type, is_read, related_url, created_at
              FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.RelatedURL, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`, recipientID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`,
		recipientID,
	).Scan(&count)
	return count, err
}

// MarkRead is scoped to the recipient so one user can never touch another
// user's records.
func (r *notificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
