package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leavehub/leave-backend-go/internal/domain/wellness"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
)

const articleColumns = `a.id, a.title, a.content, a.excerpt, a.category, a.tags, a.image_url, a.author_id,
	a.read_time, a.views, a.is_published, a.created_at, a.updated_at`

type articleRepositoryImpl struct {
	db *database.DB
}

func NewArticleRepository(db *database.DB) wellness.ArticleRepository {
	return &articleRepositoryImpl{db: db}
}

func articleDest(a *wellness.Article) []interface{} {
	return []interface{}{
		&a.ID,
		&a.Title,
		&a.Content,
		&a.Excerpt,
		&a.Category,
		&a.Tags,
		&a.ImageURL,
		&a.AuthorID,
		&a.ReadTime,
		&a.Views,
		&a.IsPublished,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

func scanArticle(row pgx.Row) (wellness.Article, error) {
	var a wellness.Article
	err := row.Scan(articleDest(&a)...)
	return a, err
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Create implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) Create(ctx context.Context, a wellness.Article) (wellness.Article, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wellness_articles AS a (id, title, content, excerpt, category, tags, image_url, author_id, read_time, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + articleColumns

	created, err := scanArticle(q.QueryRow(ctx, query,
		newID(),
		a.Title,
		a.Content,
		a.Excerpt,
		a.Category,
		tagsOrEmpty(a.Tags),
		a.ImageURL,
		a.AuthorID,
		a.ReadTime,
		a.IsPublished,
	))
	if err != nil {
		return wellness.Article{}, fmt.Errorf("failed to create article: %w", err)
	}
	return created, nil
}

// GetByID implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) GetByID(ctx context.Context, id string) (wellness.Article, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + articleColumns + `, u.name
		FROM wellness_articles a
		LEFT JOIN users u ON u.id = a.author_id
		WHERE a.id = $1`

	var a wellness.Article
	if err := q.QueryRow(ctx, query, id).Scan(append(articleDest(&a), &a.AuthorName)...); err != nil {
		if isNoRows(err) {
			return wellness.Article{}, wellness.ErrArticleNotFound
		}
		return wellness.Article{}, fmt.Errorf("failed to get article: %w", err)
	}
	return a, nil
}

// List implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) List(ctx context.Context, filter wellness.ArticleFilter) ([]wellness.Article, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"a.is_published = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("a.category = $%d", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(a.title ILIKE $%[1]d OR a.content ILIKE $%[1]d OR EXISTS (SELECT 1 FROM unnest(a.tags) AS tag WHERE tag ILIKE $%[1]d))",
			argIndex,
		))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIndex++
	}
	where := strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM wellness_articles a WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, u.name
		FROM wellness_articles a
		LEFT JOIN users u ON u.id = a.author_id
		WHERE %s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]wellness.Article, 0)
	for rows.Next() {
		var a wellness.Article
		if err := rows.Scan(append(articleDest(&a), &a.AuthorName)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, total, rows.Err()
}

// Update implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) Update(ctx context.Context, a wellness.Article) (wellness.Article, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wellness_articles AS a
		SET title = $1, content = $2, excerpt = $3, category = $4, tags = $5, image_url = $6,
			read_time = $7, is_published = $8, updated_at = NOW()
		WHERE a.id = $9
		RETURNING ` + articleColumns

	updated, err := scanArticle(q.QueryRow(ctx, query,
		a.Title,
		a.Content,
		a.Excerpt,
		a.Category,
		tagsOrEmpty(a.Tags),
		a.ImageURL,
		a.ReadTime,
		a.IsPublished,
		a.ID,
	))
	if err != nil {
		if isNoRows(err) {
			return wellness.Article{}, wellness.ErrArticleNotFound
		}
		return wellness.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	updated.AuthorName = a.AuthorName
	return updated, nil
}

// Delete implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM wellness_articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return wellness.ErrArticleNotFound
	}
	return nil
}

// IncrementViews implements wellness.ArticleRepository.
func (r *articleRepositoryImpl) IncrementViews(ctx context.Context, id string) (wellness.Article, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH bumped AS (
			UPDATE wellness_articles
			SET views = views + 1
			WHERE id = $1 AND is_published = TRUE
			RETURNING *
		)
		SELECT ` + articleColumns + `, u.name
		FROM bumped a
		LEFT JOIN users u ON u.id = a.author_id`

	var a wellness.Article
	if err := q.QueryRow(ctx, query, id).Scan(append(articleDest(&a), &a.AuthorName)...); err != nil {
		if isNoRows(err) {
			return wellness.Article{}, wellness.ErrArticleNotFound
		}
		return wellness.Article{}, fmt.Errorf("failed to increment article views: %w", err)
	}
	return a, nil
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
