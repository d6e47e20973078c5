package store

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/ideapool/backend/internal/models"
)

// PageSize is the fixed number of ideas per page.
const PageSize = 10

// ideaColumns computes average_score and epoch created_at in SQL so the
// ranking order and the returned values can never disagree. Postgres
// round(numeric, 1) rounds ties away from zero, i.e. half up for scores.
const ideaColumns = `id, content, impact, ease, confidence, user_id,
	cast(round((impact + ease + confidence) / 3.0, 1) as double precision) as average_score,
	cast(round(extract(epoch from created_at)) as bigint) as created_at`

// IdeaStore persists ideas scoped to their owning user.
type IdeaStore struct {
	db *sql.DB
}

func NewIdeaStore(db *sql.DB) *IdeaStore {
	return &IdeaStore{db: db}
}

// maxPage is the largest page whose offset still fits in an int; anything
// bigger is past the end of the data anyway.
const maxPage = math.MaxInt/PageSize + 1

// Offset converts a 1-based page number to a row offset. Page values of
// zero and below behave as page 1; values past maxPage clamp to it so the
// multiplication can never overflow into a negative offset.
func Offset(page int) int {
	if page <= 1 {
		return 0
	}
	if page > maxPage {
		page = maxPage
	}
	return (page - 1) * PageSize
}

// Create inserts a new idea for userID. Inputs are assumed validated.
func (s *IdeaStore) Create(ctx context.Context, userID int64, content string, impact, ease, confidence int) (*models.Idea, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO ideas (id, content, impact, ease, confidence, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+ideaColumns,
		uuid.New(), content, impact, ease, confidence, userID)
	return scanIdea(row)
}

// List returns one page of userID's ideas ranked by average_score
// descending, then creation time descending. Pages past the end yield an
// empty slice.
func (s *IdeaStore) List(ctx context.Context, userID int64, page int) ([]models.Idea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ideaColumns+`
		 FROM ideas WHERE user_id = $1
		 ORDER BY average_score DESC, created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, PageSize, Offset(page))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := make([]models.Idea, 0, PageSize)
	for rows.Next() {
		var i models.Idea
		if err := rows.Scan(&i.ID, &i.Content, &i.Impact, &i.Ease, &i.Confidence,
			&i.UserID, &i.AverageScore, &i.CreatedAt); err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

// Update rewrites the scored fields of an idea owned by userID. An idea
// owned by someone else behaves exactly like a nonexistent one.
func (s *IdeaStore) Update(ctx context.Context, ideaID string, userID int64, content string, impact, ease, confidence int) (*models.Idea, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE ideas SET content = $1, impact = $2, ease = $3, confidence = $4
		 WHERE id = $5 AND user_id = $6
		 RETURNING `+ideaColumns,
		content, impact, ease, confidence, ideaID, userID)
	return scanIdea(row)
}

// Delete removes an idea owned by userID, with the same ownership opacity
// as Update.
func (s *IdeaStore) Delete(ctx context.Context, ideaID string, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM ideas WHERE id = $1 AND user_id = $2`, ideaID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIdea(row *sql.Row) (*models.Idea, error) {
	var i models.Idea
	err := row.Scan(&i.ID, &i.Content, &i.Impact, &i.Ease, &i.Confidence,
		&i.UserID, &i.AverageScore, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}
