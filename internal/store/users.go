package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ideapool/backend/internal/models"
)

var (
	// ErrNotFound is returned for a missing row, or one owned by a
	// different user — callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the normalized email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// UserStore persists user records.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user and returns its id. The email is expected
// pre-normalized (trimmed, lowercased); the unique constraint is the final
// authority under concurrent duplicate signups.
func (s *UserStore) Create(ctx context.Context, email, name, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password) VALUES ($1, $2, $3) RETURNING id`,
		email, name, passwordHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, email, name, password FROM users WHERE email = $1`, email)
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.findOne(ctx,
		`SELECT id, email, name, password FROM users WHERE id = $1`, id)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
