// file: internal/database/store.go
// version: 1.3.0
// guid: 9b4c1d2e-3f5a-4b6c-8d7e-9f0a1b2c3d4e

package database

import (
	"errors"
	"fmt"

	"github.com/mixcrate/mixcrate/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// SongUpdate enumerates the mutable song fields for partial updates.
// Nil fields are left untouched. Using a struct instead of a field map keeps
// callers from injecting arbitrary columns.
type SongUpdate struct {
	Album        *string
	Year         *int
	PrimaryGenre *string
	Duration     *int
}

// IsZero reports whether the update carries no changes.
func (u SongUpdate) IsZero() bool {
	return u.Album == nil && u.Year == nil && u.PrimaryGenre == nil && u.Duration == nil
}

// SongFilter narrows song searches. String fields match as case-insensitive
// substrings; UserID matches exactly.
type SongFilter struct {
	UserID   string
	UserName string
	Artist   string
	Title    string
	Limit    int
}

// Store defines the persistence operations the rest of the application
// consumes. The SQLite implementation is the production store; MockStore
// serves tests.
type Store interface {
	Close() error

	// Songs. InsertSong is insert-or-ignore on the URL unique constraint and
	// reports whether a new row was created. Genres passed alongside a newly
	// created song are written in the same transaction; for a pre-existing
	// row no genre linkage is written.
	InsertSong(song *models.Song, genres []string) (id int64, created bool, err error)
	GetSongByID(id int64) (*models.Song, error)
	GetSongByURL(url string) (*models.Song, error)
	KnownURLs() (map[string]struct{}, error)
	RecentSongs(limit int) ([]models.Song, error)
	SearchSongs(filter SongFilter) ([]models.Song, error)
	RandomSong(genres, userIDs []string) (*models.Song, error)
	SongsWithUnknownGenre() ([]models.Song, error)
	UpdateSong(id int64, update SongUpdate) error
	DeleteSong(id int64) error
	// DeleteSongsMatching removes every song contributed by userID or whose
	// artist matches exactly (case-insensitive), returning the deleted rows.
	// Empty criteria are skipped; with both empty nothing is deleted.
	DeleteSongsMatching(userID, artist string) ([]models.Song, error)
	CountSongs() (int, error)

	// Genres. AddGenre is insert-or-ignore on the name unique constraint;
	// AddGenreToSong is idempotent on the (song, genre) pair.
	AddGenre(name string) (int64, error)
	AddGenreToSong(songID int64, genre string) error
	GenresOfSong(songID int64) ([]string, error)
	SearchGenres(query string, limit int) ([]string, error)
}

// GlobalStore is the package-level store handle initialized by
// InitializeStore. Command handlers go through this unless they were
// constructed with an explicit store.
var GlobalStore Store

// InitializeStore opens the SQLite store at the given path and installs it as
// the global store.
func InitializeStore(path string) error {
	store, err := NewSQLiteStore(path)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	GlobalStore = store
	return nil
}

// CloseStore closes the global store if one is open.
func CloseStore() error {
	if GlobalStore == nil {
		return nil
	}
	err := GlobalStore.Close()
	GlobalStore = nil
	return err
}
