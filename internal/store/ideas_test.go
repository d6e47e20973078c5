package store

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ideaRows = []string{"id", "content", "impact", "ease", "confidence", "user_id", "average_score", "created_at"}

func TestOffset(t *testing.T) {
	t.Parallel()

	cases := []struct {
		page int
		want int
	}{
		{page: -3, want: 0},
		{page: 0, want: 0},
		{page: 1, want: 0},
		{page: 2, want: 10},
		{page: 4, want: 30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Offset(tc.page), "page %d", tc.page)
	}
}

func TestOffsetNeverOverflows(t *testing.T) {
	t.Parallel()

	// A huge but well-formed page number must land past the end of the
	// data, never wrap around into a negative offset the database rejects.
	for _, page := range []int{math.MaxInt, math.MaxInt - 1, math.MaxInt/PageSize + 2, maxPage} {
		off := Offset(page)
		assert.GreaterOrEqual(t, off, 0, "page %d", page)
	}
	assert.Equal(t, (maxPage-1)*PageSize, Offset(math.MaxInt))
}

func TestIdeaStoreCreate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO ideas`).
		WithArgs(sqlmock.AnyArg(), "automate reports", 3, 8, 10, int64(7)).
		WillReturnRows(sqlmock.NewRows(ideaRows).
			AddRow("2af1a73f-8f27-4f29-9cda-6bd631a42e2e", "automate reports", 3, 8, 10, int64(7), 7.0, int64(1700000000)))

	idea, err := NewIdeaStore(db).Create(context.Background(), 7, "automate reports", 3, 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 7.0, idea.AverageScore)
	assert.Equal(t, int64(1700000000), idea.CreatedAt)
	assert.Equal(t, int64(7), idea.UserID)
}

func TestIdeaStoreListQuery(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Page 3 of a fixed page size of 10 starts at offset 20; ordering is
	// score first, then recency.
	mock.ExpectQuery(`ORDER BY average_score DESC, created_at DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(7), PageSize, 20).
		WillReturnRows(sqlmock.NewRows(ideaRows).
			AddRow("a1", "first", 10, 10, 10, int64(7), 10.0, int64(200)).
			AddRow("a2", "second", 5, 5, 5, int64(7), 5.0, int64(100)))

	ideas, err := NewIdeaStore(db).List(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "first", ideas[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeaStoreListEmptyPage(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM ideas WHERE user_id`).
		WithArgs(int64(7), PageSize, 30).
		WillReturnRows(sqlmock.NewRows(ideaRows))

	ideas, err := NewIdeaStore(db).List(context.Background(), 7, 4)
	require.NoError(t, err)
	assert.NotNil(t, ideas)
	assert.Empty(t, ideas)
}

func TestIdeaStoreUpdateScopedToOwner(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Zero rows back means either no such idea or not the caller's idea;
	// both collapse into ErrNotFound.
	mock.ExpectQuery(`UPDATE ideas SET content = \$1, impact = \$2, ease = \$3, confidence = \$4\s+WHERE id = \$5 AND user_id = \$6`).
		WithArgs("new", 1, 2, 3, "2af1a73f-8f27-4f29-9cda-6bd631a42e2e", int64(8)).
		WillReturnRows(sqlmock.NewRows(ideaRows))

	_, err = NewIdeaStore(db).Update(context.Background(), "2af1a73f-8f27-4f29-9cda-6bd631a42e2e", 8, "new", 1, 2, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdeaStoreDelete(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM ideas WHERE id = \$1 AND user_id = \$2`).
		WithArgs("a1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM ideas WHERE id = \$1 AND user_id = \$2`).
		WithArgs("a1", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewIdeaStore(db)
	require.NoError(t, s.Delete(context.Background(), "a1", 7))
	// Second delete of the same idea is a not-found, never a second success.
	assert.ErrorIs(t, s.Delete(context.Background(), "a1", 7), ErrNotFound)
}
