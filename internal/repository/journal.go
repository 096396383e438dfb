package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/daybook/daybook-go/internal/model"
)

var ErrJournalNotFound = errors.New("journal entry not found")

// JournalRepository handles journal entry persistence operations, including
// the journal_tags join rows.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

const journalColumns = `id, user_id, title, slug, entry_date, time_spent, learned, resources, created_at`

// Create inserts a new journal entry and its tag associations in one
// transaction and sets the generated ID on the journal struct. A colliding
// slug returns ErrDuplicateSlug and nothing is written.
func (r *JournalRepository) Create(ctx context.Context, journal *model.Journal, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO journals (user_id, title, slug, entry_date, time_spent, learned, resources)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		journal.UserID, journal.Title, journal.Slug, journal.Date,
		journal.TimeSpent, journal.Learned, journal.Resources,
	)
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
	journal.ID = id

	if err := insertJournalTags(ctx, tx, id, tagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// Update rewrites the journal's fields and replaces its tag associations in
// one transaction. Only rows owned by userID are touched; an absent or
// non-owned slug returns ErrJournalNotFound.
func (r *JournalRepository) Update(ctx context.Context, userID int64, journal *model.Journal, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE journals SET title = ?, slug = ?, entry_date = ?, time_spent = ?, learned = ?, resources = ?
		WHERE id = ? AND user_id = ?`

	result, err := tx.ExecContext(ctx, query,
		journal.Title, journal.Slug, journal.Date,
		journal.TimeSpent, journal.Learned, journal.Resources,
		journal.ID, userID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateSlug
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// The row may also be unchanged; confirm it exists before failing.
		var exists bool
		check := `SELECT EXISTS(SELECT 1 FROM journals WHERE id = ? AND user_id = ?)`
		if err := tx.QueryRowContext(ctx, check, journal.ID, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrJournalNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM journal_tags WHERE journal_id = ?`, journal.ID); err != nil {
		return err
	}
	if err := insertJournalTags(ctx, tx, journal.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBySlug retrieves a journal entry and its tags by slug.
func (r *JournalRepository) GetBySlug(ctx context.Context, slug string) (*model.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE slug = ?`

	journal := &model.Journal{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&journal.ID, &journal.UserID, &journal.Title, &journal.Slug, &journal.Date,
		&journal.TimeSpent, &journal.Learned, &journal.Resources, &journal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJournalNotFound
		}
		return nil, err
	}

	tags, err := r.tagsFor(ctx, journal.ID)
	if err != nil {
		return nil, err
	}
	journal.Tags = tags

	return journal, nil
}

// List retrieves all journal entries with their tags, newest entry date first.
func (r *JournalRepository) List(ctx context.Context) ([]model.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY entry_date DESC, id DESC`

	return r.queryJournals(ctx, query)
}

// ListByTag retrieves the journal entries associated with the tag identified
// by tagSlug, newest entry date first.
func (r *JournalRepository) ListByTag(ctx context.Context, tagSlug string) ([]model.Journal, error) {
	query := `SELECT j.id, j.user_id, j.title, j.slug, j.entry_date, j.time_spent, j.learned, j.resources, j.created_at
		FROM journals j
		JOIN journal_tags jt ON jt.journal_id = j.id
		JOIN tags t ON t.id = jt.tag_id
		WHERE t.slug = ?
		ORDER BY j.entry_date DESC, j.id DESC`

	return r.queryJournals(ctx, query, tagSlug)
}

// DeleteBySlug removes the journal entry with the given slug if it is owned
// by userID. Deleting an absent slug is a no-op and still succeeds; join
// rows go with the journal via ON DELETE CASCADE.
func (r *JournalRepository) DeleteBySlug(ctx context.Context, userID int64, slug string) error {
	query := `DELETE FROM journals WHERE slug = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query, slug, userID)
	return err
}

func (r *JournalRepository) queryJournals(ctx context.Context, query string, args ...any) ([]model.Journal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []model.Journal
	for rows.Next() {
		var j model.Journal
		if err := rows.Scan(
			&j.ID, &j.UserID, &j.Title, &j.Slug, &j.Date,
			&j.TimeSpent, &j.Learned, &j.Resources, &j.CreatedAt,
		); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range journals {
		tags, err := r.tagsFor(ctx, journals[i].ID)
		if err != nil {
			return nil, err
		}
		journals[i].Tags = tags
	}

	return journals, nil
}

func (r *JournalRepository) tagsFor(ctx context.Context, journalID int64) ([]model.Tag, error) {
	query := `SELECT t.id, t.title, t.slug, t.created_at
		FROM tags t
		JOIN journal_tags jt ON jt.tag_id = t.id
		WHERE jt.journal_id = ?
		ORDER BY t.title`

	rows, err := r.db.QueryContext(ctx, query, journalID)
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

func insertJournalTags(ctx context.Context, tx *sql.Tx, journalID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		query := `INSERT INTO journal_tags (journal_id, tag_id) VALUES (?, ?)`
		if _, err := tx.ExecContext(ctx, query, journalID, tagID); err != nil {
			return err
		}
	}
	return nil
}
