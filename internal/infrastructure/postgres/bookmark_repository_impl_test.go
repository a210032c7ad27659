package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	"github.com/oksasatya/go-link-saver/internal/domain/repository"
)

var bookmarkColumns = []string{"id", "user_id", "url", "title", "favicon", "summary", "created_at"}

func TestBookmarkRepositoryCreate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Unix(1700000000, 0).UTC()
	b := &entity.Bookmark{UserID: 1, URL: "example.com", Title: "Example", Favicon: "https://example.com/favicon.ico", Summary: "s"}
	mock.ExpectQuery("INSERT INTO bookmarks").
		WithArgs(b.UserID, b.URL, b.Title, b.Favicon, b.Summary).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	require.NoError(t, NewBookmarkRepository(mock).Create(context.Background(), b))
	require.Equal(t, int64(11), b.ID)
	require.Equal(t, now, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepositoryListByUserIDNewestFirst(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	t1 := time.Unix(1700000000, 0).UTC()
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)
	mock.ExpectQuery(`SELECT (.+) FROM bookmarks WHERE user_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(bookmarkColumns).
			AddRow(int64(3), int64(1), "c.com", "C", "", "sc", t3).
			AddRow(int64(2), int64(1), "b.com", "B", "", "sb", t2).
			AddRow(int64(1), int64(1), "a.com", "A", "", "sa", t1))

	got, err := NewBookmarkRepository(mock).ListByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepositoryListEmpty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookmarks").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(bookmarkColumns))

	got, err := NewBookmarkRepository(mock).ListByUserID(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestBookmarkRepositoryGetByIDScopedByOwner(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM bookmarks WHERE id = \$1 AND user_id = \$2`).
		WithArgs(int64(4), int64(2)).
		WillReturnError(pgx.ErrNoRows)

	b, err := NewBookmarkRepository(mock).GetByID(context.Background(), 4, 2)
	require.Nil(t, b)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepositoryDelete(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM bookmarks").
		WithArgs(int64(4), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM bookmarks").
		WithArgs(int64(4), int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewBookmarkRepository(mock)
	deleted, err := repo.Delete(context.Background(), 4, 1)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 4, 2)
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
