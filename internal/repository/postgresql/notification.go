package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/notification"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const notificationColumns = `id, user_id, title, message, type, is_read, read_at, metadata, created_at`

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	var metadataJSON []byte

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Title,
		&n.Message,
		&n.Type,
		&n.IsRead,
		&n.ReadAt,
		&metadataJSON,
		&n.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &n.Metadata); err != nil {
			return notification.Notification{}, fmt.Errorf("failed to unmarshal notification metadata: %w", err)
		}
	}
	return n, nil
}

func collectNotifications(rows pgx.Rows) ([]notification.Notification, error) {
	defer rows.Close()
	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func marshalMetadata(metadata map[string]interface{}) ([]byte, error) {
	if metadata == nil {
		return []byte(`{}`), nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification metadata: %w", err)
	}
	return data, nil
}

// Create implements notification.NotificationRepository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	created, err := r.CreateBatch(ctx, []notification.Notification{n})
	if err != nil {
		return notification.Notification{}, err
	}
	return created[0], nil
}

// CreateBatch implements notification.NotificationRepository.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) ([]notification.Notification, error) {
	if len(notifications) == 0 {
		return []notification.Notification{}, nil
	}

	q := GetQuerier(ctx, r.db)

	const columnsPerRow = 6
	valueStrings := make([]string, 0, len(notifications))
	valueArgs := make([]interface{}, 0, len(notifications)*columnsPerRow)

	for i, n := range notifications {
		metadataJSON, err := marshalMetadata(n.Metadata)
		if err != nil {
			return nil, err
		}

		base := i * columnsPerRow
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		valueArgs = append(valueArgs,
			newID(),
			n.UserID,
			n.Title,
			n.Message,
			string(n.Type),
			metadataJSON,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO notifications (id, user_id, title, message, type, metadata)
		VALUES %s
		RETURNING %s
	`, strings.Join(valueStrings, ", "), notificationColumns)

	rows, err := q.Query(ctx, query, valueArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifications: %w", err)
	}
	return collectNotifications(rows)
}

// ListByUser implements notification.NotificationRepository.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, filter notification.ListFilter) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "user_id = $1"
	if filter.UnreadOnly {
		whereClause += " AND is_read = FALSE"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $2
	`, notificationColumns, whereClause)

	rows, err := q.Query(ctx, query, userID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	return collectNotifications(rows)
}

// CountUnread implements notification.NotificationRepository.
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead implements notification.NotificationRepository.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead implements notification.NotificationRepository.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteReadBefore implements notification.NotificationRepository.
func (r *notificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
