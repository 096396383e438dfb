package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/daybook/daybook-go/internal/model"
)

var ErrTagNotFound = errors.New("tag not found")

// TagRepository handles tag persistence operations.
type TagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository.
func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag and sets the generated ID on the tag struct.
// A colliding slug returns ErrDuplicateSlug.
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	query := `INSERT INTO tags (title, slug) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, tag.Title, tag.Slug)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateSlug
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	tag.ID = id
	return nil
}

// GetBySlug retrieves a tag by its slug.
func (r *TagRepository) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	query := `SELECT id, title, slug, created_at FROM tags WHERE slug = ?`

	tag := &model.Tag{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&tag.ID, &tag.Title, &tag.Slug, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	return tag, nil
}

// List retrieves all tags ordered by title.
func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	query := `SELECT id, title, slug, created_at FROM tags ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Title, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}
