package model

import "time"

// Tag is a topic label for journal entries. Slug is derived from Title and
// unique; tags are immutable once created.
type Tag struct {
	ID        int64
	Title     string
	Slug      string
	CreatedAt time.Time
}

// TagRequest represents a tag creation submission.
type TagRequest struct {
	Title string `json:"title"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// TagJournalsResponse lists the journal entries filed under one tag.
type TagJournalsResponse struct {
	Tag      TagResponse       `json:"tag"`
	Journals []JournalResponse `json:"journals"`
}
