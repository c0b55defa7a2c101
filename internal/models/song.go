// file: internal/models/song.go
// version: 1.1.0
// guid: 4f8a2b1c-9d3e-4a5f-8b6c-7d0e1f2a3b4c

package models

import "time"

// Song represents a community-shared track stored in the library.
// URL is the natural key: inserting a song whose URL is already known is a
// no-op, not an error.
type Song struct {
	ID           int64   `json:"id" db:"id"`
	Title        string  `json:"title" db:"title"`
	Artist       string  `json:"artist" db:"artist"`
	Album        *string `json:"album" db:"album"`
	Year         *int    `json:"year" db:"year"`
	PrimaryGenre *string `json:"primary_genre" db:"primary_genre"`
	Duration     int     `json:"duration" db:"duration"`
	URL          string  `json:"url" db:"url"`
	AddedAt      int64   `json:"added_at" db:"added_at"` // unix seconds
	UserID       string  `json:"user_id" db:"user_id"`
	UserName     string  `json:"user_name" db:"user_name"`
}

// Genre represents a genre tag. Names are unique and created on first use.
type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// MetadataResult is the transient outcome of a catalog lookup.
// PrimaryGenre always equals Genres[0] when Genres is non-empty.
type MetadataResult struct {
	Album        string
	Year         *int
	Genres       []string
	PrimaryGenre string
}

// HasGenres reports whether the lookup produced at least one genre tag.
func (r *MetadataResult) HasGenres() bool {
	return r != nil && len(r.Genres) > 0
}

// LinkOccurrence is one music link discovered in a channel message.
type LinkOccurrence struct {
	URL       string
	UserID    string
	UserName  string
	Timestamp time.Time
}

// ScanSummary is the outcome of one scan-and-ingest run.
type ScanSummary struct {
	ScanID        string `json:"scan_id"`
	LinksScanned  int    `json:"links_scanned"`
	NewSongsAdded int    `json:"new_songs_added"`
}
