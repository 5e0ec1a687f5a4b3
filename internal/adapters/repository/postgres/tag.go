package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"tagboard/internal/core/domain"
	"tagboard/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type sqlTagRepository struct {
	db SQLQuerier
}

// NewSqlTagRepository creates sqlTagRepository that implements port.TagRepository
func NewSqlTagRepository(db SQLQuerier) port.TagRepository {
	return &sqlTagRepository{
		db: db,
	}
}

// Create inserts a tag and returns the stored row
func (s *sqlTagRepository) Create(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {

	query := `
		INSERT INTO tags (title, slug, amount_of_videos)
		VALUES ($1, $2, $3)
		RETURNING id, title, slug, amount_of_videos, created_at`

	var tagDB dbTag
	err := s.db.QueryRowContext(ctx, query, tag.Title, tag.Slug, tag.AmountOfVideos).Scan(
		&tagDB.ID,
		&tagDB.Title,
		&tagDB.Slug,
		&tagDB.AmountOfVideos,
		&tagDB.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("tag %s : %w", tag.Slug, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("error inserting tag: %w", err)
	}

	return tagDB.ToDomain(), nil
}

// List returns one window of tags whose title contains the filter, sorted by title,
// together with the total number of matches
func (s *sqlTagRepository) List(ctx context.Context, title string, offset, limit int) ([]domain.Tag, int, error) {
	if limit <= 0 {
		limit = domain.DefaultPerPage
	}
	if limit > domain.MaxPerPage {
		limit = domain.MaxPerPage
	}
	if offset < 0 {
		offset = 0
	}

	pattern := likePattern(title)

	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags WHERE title ILIKE $1`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting tags: %w", err)
	}

	query := `
		SELECT id, title, slug, amount_of_videos, created_at
		FROM tags
		WHERE title ILIKE $1
		ORDER BY title ASC, id ASC
		OFFSET $2
		LIMIT $3`

	tags, err := s.query(ctx, query, pattern, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

// All returns every tag matching the filter, sorted by title
func (s *sqlTagRepository) All(ctx context.Context, title string) ([]domain.Tag, error) {
	query := `
		SELECT id, title, slug, amount_of_videos, created_at
		FROM tags
		WHERE title ILIKE $1
		ORDER BY title ASC, id ASC`

	return s.query(ctx, query, likePattern(title))
}

func (s *sqlTagRepository) query(ctx context.Context, query string, args ...any) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer rows.Close()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var tagDB dbTag
		if err := rows.Scan(&tagDB.ID, &tagDB.Title, &tagDB.Slug, &tagDB.AmountOfVideos, &tagDB.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}
		tags = append(tags, *tagDB.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches the filter as a literal substring
func likePattern(title string) string {
	return "%" + likeEscaper.Replace(title) + "%"
}

// dbTag represents a tag in DB
type dbTag struct {
	ID             uuid.UUID `db:"id"`
	Title          string    `db:"title"`
	Slug           string    `db:"slug"`
	AmountOfVideos int       `db:"amount_of_videos"`
	CreatedAt      time.Time `db:"created_at"`
}

// ToDomain converts to domain.Tag
func (t *dbTag) ToDomain() *domain.Tag {
	return &domain.Tag{
		ID:             t.ID.String(),
		Title:          t.Title,
		Slug:           t.Slug,
		AmountOfVideos: t.AmountOfVideos,
		CreatedAt:      t.CreatedAt,
	}
}
