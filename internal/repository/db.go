package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// ErrDuplicateSlug is returned when a journal or tag title slugifies to a
// slug that already exists. The unique constraint is the only collision
// check; titles differing in case or punctuation can still collide.
var ErrDuplicateSlug = errors.New("slug already exists")

// NewDB creates a new MySQL connection pool with the given DSN. The DSN must
// include parseTime=true so DATE and TIMESTAMP columns scan into time.Time.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		auth_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		slug VARCHAR(100) UNIQUE NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS journals (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		entry_date DATE NOT NULL,
		time_spent INT NOT NULL,
		learned TEXT NOT NULL,
		resources TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS journal_tags (
		journal_id BIGINT NOT NULL,
		tag_id BIGINT NOT NULL,
		PRIMARY KEY (journal_id, tag_id),
		FOREIGN KEY (journal_id) REFERENCES journals(id) ON DELETE CASCADE,
		FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	)`,
}

// Migrate creates the journal tables if they do not exist. Safe to run on
// every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, ddl := range tableDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
