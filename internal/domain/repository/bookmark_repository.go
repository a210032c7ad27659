package repository

import (
	"context"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
)

// BookmarkRepository persists bookmarks. Every read and delete is scoped by
// the owning user id.
type BookmarkRepository interface {
	Create(ctx context.Context, b *entity.Bookmark) error
	// ListByUserID returns the owner's bookmarks newest first.
	ListByUserID(ctx context.Context, userID int64) ([]entity.Bookmark, error)
	GetByID(ctx context.Context, id, userID int64) (*entity.Bookmark, error)
	// Delete reports whether a row owned by userID was removed.
	Delete(ctx context.Context, id, userID int64) (bool, error)
}
