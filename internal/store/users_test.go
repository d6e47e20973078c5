package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ann@example.com", "Ann Perkins", "hashed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := NewUserStore(db).Create(context.Background(), "ann@example.com", "Ann Perkins", "hashed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ann@example.com", "Ann Perkins", "hashed").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewUserStore(db).Create(context.Background(), "ann@example.com", "Ann Perkins", "hashed")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserStoreFindByEmail(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, name, password FROM users WHERE email`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password"}).
			AddRow(int64(7), "ann@example.com", "Ann Perkins", "hashed"))

	u, err := NewUserStore(db).FindByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "Ann Perkins", u.Name)
	assert.Equal(t, "hashed", u.PasswordHash)
}

func TestUserStoreFindByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, email, name, password FROM users WHERE id`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password"}))

	_, err = NewUserStore(db).FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
