package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	repo "github.com/oksasatya/go-link-saver/internal/domain/repository"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")

// BookmarkIndex is the full-text search side of the bookmark store.
type BookmarkIndex interface {
	Index(ctx context.Context, b entity.Bookmark) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, userID int64, q string, size int) ([]entity.Bookmark, error)
}

type BookmarkService struct {
	Pipeline *Pipeline
	Repo     repo.BookmarkRepository
	Index    BookmarkIndex // optional
	Logger   *logrus.Logger
}

func NewBookmarkService(p *Pipeline, bookmarks repo.BookmarkRepository, index BookmarkIndex, logger *logrus.Logger) *BookmarkService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &BookmarkService{Pipeline: p, Repo: bookmarks, Index: index, Logger: logger}
}

func (s *BookmarkService) Create(ctx context.Context, ownerID int64, rawURL string) (*entity.Bookmark, error) {
	b, err := s.Pipeline.Ingest(ctx, ownerID, rawURL)
	if err != nil {
		return nil, err
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, *b); err != nil {
			helpers.LogError(s.Logger, "index bookmark failed", err, logrus.Fields{"bookmark_id": b.ID})
		}
	}
	return b, nil
}

// List returns the owner's bookmarks newest first, never nil.
func (s *BookmarkService) List(ctx context.Context, ownerID int64) ([]entity.Bookmark, error) {
	items, err := s.Repo.ListByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	if items == nil {
		items = []entity.Bookmark{}
	}
	return items, nil
}

// Get returns ErrBookmarkNotFound both for missing ids and for bookmarks
// owned by someone else.
func (s *BookmarkService) Get(ctx context.Context, ownerID, id int64) (*entity.Bookmark, error) {
	b, err := s.Repo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, ownerID, id int64) (bool, error) {
	ok, err := s.Repo.Delete(ctx, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	if ok && s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			helpers.LogError(s.Logger, "unindex bookmark failed", err, logrus.Fields{"bookmark_id": id})
		}
	}
	return ok, nil
}

// Search runs a full-text query over the owner's bookmarks. Without an index
// it always returns an empty result.
func (s *BookmarkService) Search(ctx context.Context, ownerID int64, q string, size int) ([]entity.Bookmark, error) {
	if s.Index == nil {
		return []entity.Bookmark{}, nil
	}
	items, err := s.Index.Search(ctx, ownerID, q, size)
	if err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	owned := make([]entity.Bookmark, 0, len(items))
	for _, b := range items {
		if b.UserID == ownerID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}
