package model

import "time"

// Journal is a dated diary entry owned by exactly one user. Slug is always
// the slugified form of the current Title; Date is the user-supplied entry
// date, distinct from CreatedAt.
type Journal struct {
	ID        int64
	UserID    int64
	Title     string
	Slug      string
	Date      time.Time
	TimeSpent int
	Learned   string
	Resources string
	CreatedAt time.Time
	Tags      []Tag
}

// JournalRequest represents a create or edit submission. Date uses the
// YYYY-MM-DD form; Tags holds IDs of existing tags to associate.
type JournalRequest struct {
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	TimeSpent int     `json:"time_spent"`
	Learned   string  `json:"learned"`
	Resources string  `json:"resources"`
	Tags      []int64 `json:"tags"`
}

// JournalResponse represents a journal entry in API responses.
type JournalResponse struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Date      string        `json:"date"`
	TimeSpent int           `json:"time_spent"`
	Learned   string        `json:"learned"`
	Resources string        `json:"resources"`
	CreatedAt time.Time     `json:"created_at"`
	Tags      []TagResponse `json:"tags"`
}
