// file: internal/session/manager.go
// version: 1.2.0
// guid: 0e2f3a4b-5c6d-4e7f-8a9b-0c1d2e3f4a5b

package session

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/metrics"
	"github.com/mixcrate/mixcrate/internal/models"
)

// User-visible session errors; they leave state unchanged.
var (
	ErrNoActiveSession = errors.New("no genre fix session in progress")
	ErrNoGenres        = errors.New("at least one genre is required")
)

// maxGenresPerSubmit caps how many genres one Submit may carry.
const maxGenresPerSubmit = 4

// Turn is what the operator sees after a Start or Submit: either the next
// song awaiting genres, or completion.
type Turn struct {
	Song        *models.Song
	Prompt      string
	GenresSaved []string
	Remaining   int
	Done        bool
}

// Manager drives per-operator genre-fix workflows over songs whose primary
// genre is still unknown. Sessions across operators are fully independent.
type Manager struct {
	store    database.Store
	sessions Store
}

// NewManager wires a session manager over the given stores.
func NewManager(store database.Store, sessions Store) *Manager {
	return &Manager{store: store, sessions: sessions}
}

// Start begins (or restarts) a genre-fix session for the operator. With no
// unknown-genre songs left it reports completion and creates no session.
func (m *Manager) Start(userID string) (*Turn, error) {
	songs, err := m.store.SongsWithUnknownGenre()
	if err != nil {
		return nil, fmt.Errorf("failed to query unknown-genre songs: %w", err)
	}

	if len(songs) == 0 {
		m.sessions.Delete(userID)
		return &Turn{Done: true}, nil
	}

	remaining := make([]int64, 0, len(songs)-1)
	for _, song := range songs[1:] {
		remaining = append(remaining, song.ID)
	}
	m.sessions.Set(userID, &Session{
		CurrentSongID: songs[0].ID,
		Remaining:     remaining,
	})
	metrics.IncSessionStarted()

	log.Printf("[INFO] session: %s started genre fix over %d songs", userID, len(songs))
	return &Turn{
		Song:      &songs[0],
		Prompt:    "Please provide genre(s) for this song using /setgenre",
		Remaining: len(remaining),
	}, nil
}

// Submit records 1-4 genres for the operator's current song and advances the
// queue. The first genre overwrites the song's primary genre; every genre is
// written as an idempotent tag. When the queue empties the session is
// deleted and completion reported.
func (m *Manager) Submit(userID string, genres []string) (*Turn, error) {
	sess, ok := m.sessions.Get(userID)
	if !ok || sess.CurrentSongID == 0 {
		return nil, ErrNoActiveSession
	}

	cleaned := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoGenres
	}
	if len(cleaned) > maxGenresPerSubmit {
		cleaned = cleaned[:maxGenresPerSubmit]
	}

	songID := sess.CurrentSongID
	primary := cleaned[0]
	if err := m.store.UpdateSong(songID, database.SongUpdate{PrimaryGenre: &primary}); err != nil {
		return nil, fmt.Errorf("failed to set primary genre on song %d: %w", songID, err)
	}
	for _, g := range cleaned {
		if err := m.store.AddGenreToSong(songID, g); err != nil {
			return nil, fmt.Errorf("failed to tag song %d with %q: %w", songID, g, err)
		}
	}
	metrics.IncGenreSubmission()

	if len(sess.Remaining) == 0 {
		m.sessions.Delete(userID)
		log.Printf("[INFO] session: %s finished genre fix", userID)
		return &Turn{Done: true, GenresSaved: cleaned}, nil
	}

	next := sess.Remaining[0]
	sess.CurrentSongID = next
	sess.Remaining = sess.Remaining[1:]
	m.sessions.Set(userID, sess)

	song, err := m.store.GetSongByID(next)
	if err != nil {
		return nil, fmt.Errorf("failed to load next song %d: %w", next, err)
	}
	return &Turn{
		Song:        song,
		Prompt:      "Please provide genre(s) for this song using /setgenre",
		GenresSaved: cleaned,
		Remaining:   len(sess.Remaining),
	}, nil
}
