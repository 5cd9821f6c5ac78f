package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/notice"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const noticeColumns = `n.id, n.title, n.content, n.posted_by, n.posted_date, n.is_active, n.created_at, n.updated_at`

type noticeRepositoryImpl struct {
	db *database.DB
}

func NewNoticeRepository(db *database.DB) notice.NoticeRepository {
	return &noticeRepositoryImpl{db: db}
}

func noticeDest(n *notice.Notice) []interface{} {
	return []interface{}{&n.ID, &n.Title, &n.Content, &n.PostedBy, &n.PostedDate, &n.IsActive, &n.CreatedAt, &n.UpdatedAt}
}

func scanNotice(row pgx.Row) (notice.Notice, error) {
	var n notice.Notice
	err := row.Scan(noticeDest(&n)...)
	return n, err
}

// Create implements notice.NoticeRepository.
func (r *noticeRepositoryImpl) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notices AS n (id, title, content, posted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + noticeColumns

	created, err := scanNotice(q.QueryRow(ctx, query, newID(), n.Title, n.Content, n.PostedBy))
	if err != nil {
		return notice.Notice{}, fmt.Errorf("failed to create notice: %w", err)
	}
	return created, nil
}

// GetByID implements notice.NoticeRepository.
func (r *noticeRepositoryImpl) GetByID(ctx context.Context, id string) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + noticeColumns + `, u.name
		FROM notices n
		LEFT JOIN users u ON u.id = n.posted_by
		WHERE n.id = $1`

	var n notice.Notice
	if err := q.QueryRow(ctx, query, id).Scan(append(noticeDest(&n), &n.PosterName)...); err != nil {
		if isNoRows(err) {
			return notice.Notice{}, notice.ErrNoticeNotFound
		}
		return notice.Notice{}, fmt.Errorf("failed to get notice: %w", err)
	}
	return n, nil
}

// ListActive implements notice.NoticeRepository.
func (r *noticeRepositoryImpl) ListActive(ctx context.Context) ([]notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+noticeColumns+`, u.name
		FROM notices n
		LEFT JOIN users u ON u.id = n.posted_by
		WHERE n.is_active = TRUE
		ORDER BY n.posted_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := make([]notice.Notice, 0)
	for rows.Next() {
		var n notice.Notice
		if err := rows.Scan(append(noticeDest(&n), &n.PosterName)...); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// Update implements notice.NoticeRepository.
func (r *noticeRepositoryImpl) Update(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notices AS n
		SET title = $1, content = $2, is_active = $3, updated_at = NOW()
		WHERE n.id = $4
		RETURNING ` + noticeColumns

	updated, err := scanNotice(q.QueryRow(ctx, query, n.Title, n.Content, n.IsActive, n.ID))
	if err != nil {
		if isNoRows(err) {
			return notice.Notice{}, notice.ErrNoticeNotFound
		}
		return notice.Notice{}, fmt.Errorf("failed to update notice: %w", err)
	}
	updated.PosterName = n.PosterName
	return updated, nil
}

// Deactivate implements notice.NoticeRepository.
func (r *noticeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notices SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notice.ErrNoticeNotFound
	}
	return nil
}
