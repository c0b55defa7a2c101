// file: internal/database/sqlite_store.go
// version: 1.5.2
// guid: 7e2f3a4b-5c6d-4e7f-9a8b-1c2d3e4f5a6b

package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mixcrate/mixcrate/internal/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const songSelectColumns = `
	id, title, artist, album, year, primary_genre, duration,
	url, added_at, user_id, user_name
`

func scanSong(scanner rowScanner, song *models.Song) error {
	return scanner.Scan(
		&song.ID, &song.Title, &song.Artist, &song.Album, &song.Year,
		&song.PrimaryGenre, &song.Duration, &song.URL, &song.AddedAt,
		&song.UserID, &song.UserName,
	)
}

// SQLiteStore implements the Store interface using SQLite3.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// createTables creates all required tables.
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS songs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		year INTEGER,
		primary_genre TEXT,
		duration INTEGER,
		url TEXT UNIQUE NOT NULL,
		added_at INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_songs_url ON songs(url);
	CREATE INDEX IF NOT EXISTS idx_songs_user ON songs(user_id);
	CREATE INDEX IF NOT EXISTS idx_songs_primary_genre ON songs(primary_genre);

	CREATE TABLE IF NOT EXISTS genres (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS song_genres (
		song_id INTEGER NOT NULL,
		genre_id INTEGER NOT NULL,
		PRIMARY KEY (song_id, genre_id),
		FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE CASCADE,
		FOREIGN KEY (genre_id) REFERENCES genres(id) ON DELETE CASCADE
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertSong inserts a song unless its URL is already known, writing any
// resolved genres for a newly created row in the same transaction.
func (s *SQLiteStore) InsertSong(song *models.Song, genres []string) (int64, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO songs
			(title, artist, album, year, primary_genre, duration, url, added_at, user_id, user_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.Title, song.Artist, song.Album, song.Year, song.PrimaryGenre,
		song.Duration, song.URL, song.AddedAt, song.UserID, song.UserName,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert song: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if affected == 0 {
		// Already known: report the existing row, write no genre linkage.
		var id int64
		if err := tx.QueryRow(`SELECT id FROM songs WHERE url = ?`, song.URL).Scan(&id); err != nil {
			return 0, false, fmt.Errorf("failed to look up existing song: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("failed to commit: %w", err)
		}
		return id, false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read insert id: %w", err)
	}

	for _, genre := range genres {
		if err := addGenreToSongTx(tx, id, genre); err != nil {
			return 0, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit: %w", err)
	}
	song.ID = id
	return id, true, nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func addGenreToSongTx(e execer, songID int64, genre string) error {
	if _, err := e.Exec(`INSERT OR IGNORE INTO genres (name) VALUES (?)`, genre); err != nil {
		return fmt.Errorf("failed to insert genre %q: %w", genre, err)
	}
	var genreID int64
	if err := e.QueryRow(`SELECT id FROM genres WHERE name = ?`, genre).Scan(&genreID); err != nil {
		return fmt.Errorf("failed to look up genre %q: %w", genre, err)
	}
	if _, err := e.Exec(`INSERT OR IGNORE INTO song_genres (song_id, genre_id) VALUES (?, ?)`, songID, genreID); err != nil {
		return fmt.Errorf("failed to link genre %q: %w", genre, err)
	}
	return nil
}

// GetSongByID returns the song with the given id.
func (s *SQLiteStore) GetSongByID(id int64) (*models.Song, error) {
	song := &models.Song{}
	err := scanSong(s.db.QueryRow(`SELECT `+songSelectColumns+` FROM songs WHERE id = ?`, id), song)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song %d: %w", id, err)
	}
	return song, nil
}

// GetSongByURL returns the song with the given url.
func (s *SQLiteStore) GetSongByURL(url string) (*models.Song, error) {
	song := &models.Song{}
	err := scanSong(s.db.QueryRow(`SELECT `+songSelectColumns+` FROM songs WHERE url = ?`, url), song)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song by url: %w", err)
	}
	return song, nil
}

// KnownURLs returns the set of all stored song urls.
func (s *SQLiteStore) KnownURLs() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT url FROM songs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls[url] = struct{}{}
	}
	return urls, rows.Err()
}

func (s *SQLiteStore) querySongs(query string, args ...interface{}) ([]models.Song, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := scanSong(rows, &song); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// RecentSongs returns the most recently added songs, newest first.
func (s *SQLiteStore) RecentSongs(limit int) ([]models.Song, error) {
	if limit < 1 {
		limit = 10
	}
	return s.querySongs(
		`SELECT `+songSelectColumns+` FROM songs ORDER BY added_at DESC, id DESC LIMIT ?`, limit)
}

// SearchSongs returns songs matching the filter, newest first.
func (s *SQLiteStore) SearchSongs(filter SongFilter) ([]models.Song, error) {
	query := `SELECT ` + songSelectColumns + ` FROM songs WHERE 1=1`
	var args []interface{}

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.UserName != "" {
		query += ` AND LOWER(user_name) LIKE ?`
		args = append(args, "%"+strings.ToLower(filter.UserName)+"%")
	}
	if filter.Artist != "" {
		query += ` AND LOWER(artist) LIKE ?`
		args = append(args, "%"+strings.ToLower(filter.Artist)+"%")
	}
	if filter.Title != "" {
		query += ` AND LOWER(title) LIKE ?`
		args = append(args, "%"+strings.ToLower(filter.Title)+"%")
	}

	query += ` ORDER BY id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	return s.querySongs(query, args...)
}

// RandomSong picks one random song, optionally constrained to any of the
// given primary genres and contributor ids.
func (s *SQLiteStore) RandomSong(genres, userIDs []string) (*models.Song, error) {
	query := `SELECT ` + songSelectColumns + ` FROM songs WHERE 1=1`
	var args []interface{}

	if len(genres) > 0 {
		query += ` AND LOWER(primary_genre) IN (` + placeholders(len(genres)) + `)`
		for _, g := range genres {
			args = append(args, strings.ToLower(g))
		}
	}
	if len(userIDs) > 0 {
		query += ` AND user_id IN (` + placeholders(len(userIDs)) + `)`
		for _, u := range userIDs {
			args = append(args, u)
		}
	}
	query += ` ORDER BY RANDOM() LIMIT 1`

	song := &models.Song{}
	err := scanSong(s.db.QueryRow(query, args...), song)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random song: %w", err)
	}
	return song, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// SongsWithUnknownGenre returns songs whose primary genre is still the
// "Unknown Genre" placeholder, ordered by id ascending.
func (s *SQLiteStore) SongsWithUnknownGenre() ([]models.Song, error) {
	return s.querySongs(
		`SELECT ` + songSelectColumns + ` FROM songs
		 WHERE LOWER(primary_genre) = 'unknown genre' ORDER BY id ASC`)
}

// UpdateSong applies a partial update to one song.
func (s *SQLiteStore) UpdateSong(id int64, update SongUpdate) error {
	if update.IsZero() {
		return nil
	}

	var sets []string
	var args []interface{}
	if update.Album != nil {
		sets = append(sets, "album = ?")
		args = append(args, *update.Album)
	}
	if update.Year != nil {
		sets = append(sets, "year = ?")
		args = append(args, *update.Year)
	}
	if update.PrimaryGenre != nil {
		sets = append(sets, "primary_genre = ?")
		args = append(args, *update.PrimaryGenre)
	}
	if update.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *update.Duration)
	}
	args = append(args, id)

	res, err := s.db.Exec(`UPDATE songs SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update song %d: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSong removes one song; genre links cascade.
func (s *SQLiteStore) DeleteSong(id int64) error {
	res, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete song %d: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSongsMatching removes songs by contributor id or exact artist name
// and returns what was deleted.
func (s *SQLiteStore) DeleteSongsMatching(userID, artist string) ([]models.Song, error) {
	if userID == "" && artist == "" {
		return nil, nil
	}

	query := `SELECT ` + songSelectColumns + ` FROM songs WHERE 0=1`
	var args []interface{}
	if userID != "" {
		query += ` OR user_id = ?`
		args = append(args, userID)
	}
	if artist != "" {
		query += ` OR LOWER(artist) = ?`
		args = append(args, strings.ToLower(artist))
	}

	songs, err := s.querySongs(query, args...)
	if err != nil {
		return nil, err
	}

	for _, song := range songs {
		if _, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, song.ID); err != nil {
			return nil, fmt.Errorf("failed to delete song %d: %w", song.ID, err)
		}
	}
	return songs, nil
}

// CountSongs returns the total number of stored songs.
func (s *SQLiteStore) CountSongs() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// AddGenre creates the genre if it does not exist and returns its id.
func (s *SQLiteStore) AddGenre(name string) (int64, error) {
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO genres (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("failed to insert genre %q: %w", name, err)
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM genres WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to look up genre %q: %w", name, err)
	}
	return id, nil
}

// AddGenreToSong tags a song with a genre, creating the genre on first use.
func (s *SQLiteStore) AddGenreToSong(songID int64, genre string) error {
	return addGenreToSongTx(s.db, songID, genre)
}

// GenresOfSong returns the names of all genres tagged on a song.
func (s *SQLiteStore) GenresOfSong(songID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT g.name FROM genres g
		JOIN song_genres sg ON sg.genre_id = g.id
		WHERE sg.song_id = ?
		ORDER BY g.name`, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to query song genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SearchGenres returns genre names containing the query, for autocomplete.
func (s *SQLiteStore) SearchGenres(query string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 25
	}
	rows, err := s.db.Query(`
		SELECT name FROM genres
		WHERE LOWER(name) LIKE ?
		ORDER BY name LIMIT ?`, "%"+strings.ToLower(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
