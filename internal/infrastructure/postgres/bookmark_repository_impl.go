package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	"github.com/oksasatya/go-link-saver/internal/domain/repository"
)

type BookmarkRepository struct {
	db DB
}

func NewBookmarkRepository(db DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Create(ctx context.Context, b *entity.Bookmark) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO bookmarks (user_id, url, title, favicon, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, b.UserID, b.URL, b.Title, b.Favicon, b.Summary)

	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) ListByUserID(ctx context.Context, userID int64) ([]entity.Bookmark, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, url, title, favicon, summary, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Bookmark, 0)
	for rows.Next() {
		var b entity.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Favicon, &b.Summary, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return out, nil
}

func (r *BookmarkRepository) GetByID(ctx context.Context, id, userID int64) (*entity.Bookmark, error) {
	b := &entity.Bookmark{}
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, url, title, favicon, summary, created_at
		FROM bookmarks
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err := row.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Favicon, &b.Summary, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select bookmark: %w", err)
	}
	return b, nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.BookmarkRepository = (*BookmarkRepository)(nil)
