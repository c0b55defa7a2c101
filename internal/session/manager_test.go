// file: internal/session/manager_test.go
// version: 1.1.0
// guid: 3b4c5d6e-7f8a-4b9c-8d0e-1f2a3b4c5d6f

package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/models"
)

func unknownSongs(ids ...int64) []models.Song {
	genre := "Unknown Genre"
	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		songs = append(songs, models.Song{
			ID:           id,
			Title:        fmt.Sprintf("Song %d", id),
			Artist:       "Someone",
			PrimaryGenre: &genre,
		})
	}
	return songs
}

// trackingStore records primary-genre updates and tag writes per song id.
func trackingStore(queue []models.Song) (*database.MockStore, map[int64]string, map[int64][]string) {
	primaries := make(map[int64]string)
	tags := make(map[int64][]string)

	store := &database.MockStore{
		SongsWithUnknownGenreFunc: func() ([]models.Song, error) {
			return queue, nil
		},
		GetSongByIDFunc: func(id int64) (*models.Song, error) {
			for i := range queue {
				if queue[i].ID == id {
					return &queue[i], nil
				}
			}
			return nil, database.ErrNotFound
		},
		UpdateSongFunc: func(id int64, update database.SongUpdate) error {
			if update.PrimaryGenre != nil {
				primaries[id] = *update.PrimaryGenre
			}
			return nil
		},
		AddGenreToSongFunc: func(songID int64, genre string) error {
			tags[songID] = append(tags[songID], genre)
			return nil
		},
	}
	return store, primaries, tags
}

func TestStartWithNothingToFix(t *testing.T) {
	store := &database.MockStore{
		SongsWithUnknownGenreFunc: func() ([]models.Song, error) { return nil, nil },
	}
	manager := NewManager(store, NewMemoryStore())

	turn, err := manager.Start("operator-1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !turn.Done {
		t.Error("Expected Done with no unknown-genre songs")
	}

	// And no session was left behind.
	if _, err := manager.Submit("operator-1", []string{"house"}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	manager := NewManager(&database.MockStore{}, NewMemoryStore())

	if _, err := manager.Submit("operator-1", []string{"house"}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}
}

func TestSubmitRejectsEmptyGenres(t *testing.T) {
	store, _, _ := trackingStore(unknownSongs(5))
	manager := NewManager(store, NewMemoryStore())

	if _, err := manager.Start("operator-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := manager.Submit("operator-1", []string{"  ", ""}); !errors.Is(err, ErrNoGenres) {
		t.Errorf("Expected ErrNoGenres, got %v", err)
	}

	// The failed submit leaves the session usable.
	turn, err := manager.Submit("operator-1", []string{"house"})
	if err != nil {
		t.Fatalf("Submit after rejection failed: %v", err)
	}
	if !turn.Done {
		t.Error("Expected Done after the only song was fixed")
	}
}

func TestFullSessionWalk(t *testing.T) {
	store, primaries, tags := trackingStore(unknownSongs(5, 9, 12))
	manager := NewManager(store, NewMemoryStore())

	turn, err := manager.Start("operator-1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if turn.Done || turn.Song.ID != 5 {
		t.Fatalf("Expected song 5 first, got %+v", turn)
	}
	if turn.Remaining != 2 {
		t.Errorf("Expected 2 remaining, got %d", turn.Remaining)
	}

	turn, err = manager.Submit("operator-1", []string{"House", " Electronic "})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if turn.Done || turn.Song.ID != 9 {
		t.Fatalf("Expected song 9 next, got %+v", turn)
	}
	// Genres are lowercased and trimmed before storage.
	if primaries[5] != "house" {
		t.Errorf("Expected first genre as primary, got %q", primaries[5])
	}
	if len(tags[5]) != 2 || tags[5][0] != "house" || tags[5][1] != "electronic" {
		t.Errorf("Expected both genres tagged, got %v", tags[5])
	}

	turn, err = manager.Submit("operator-1", []string{"ambient"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if turn.Done || turn.Song.ID != 12 {
		t.Fatalf("Expected song 12 next, got %+v", turn)
	}

	turn, err = manager.Submit("operator-1", []string{"techno"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !turn.Done {
		t.Fatalf("Expected session finished, got %+v", turn)
	}
	if primaries[12] != "techno" {
		t.Errorf("Expected last song updated, got %q", primaries[12])
	}

	// The session is gone once the queue empties.
	if _, err := manager.Submit("operator-1", []string{"house"}); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession after completion, got %v", err)
	}
}

func TestSubmitCapsGenres(t *testing.T) {
	store, _, tags := trackingStore(unknownSongs(5))
	manager := NewManager(store, NewMemoryStore())

	if _, err := manager.Start("operator-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := manager.Submit("operator-1", []string{"a", "b", "c", "d", "e", "f"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(tags[5]) != 4 {
		t.Errorf("Expected at most 4 genres per submit, got %v", tags[5])
	}
}

func TestSessionsAreIsolatedPerOperator(t *testing.T) {
	store, primaries, _ := trackingStore(unknownSongs(5, 9))
	manager := NewManager(store, NewMemoryStore())

	if _, err := manager.Start("operator-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := manager.Start("operator-2"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Both operators point at the head of the queue independently.
	if _, err := manager.Submit("operator-1", []string{"house"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if primaries[5] != "house" {
		t.Errorf("Expected operator-1's submit applied to song 5, got %q", primaries[5])
	}

	if _, err := manager.Submit("operator-2", []string{"techno"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if primaries[5] != "techno" {
		t.Errorf("Expected operator-2's own cursor on song 5, got %q", primaries[5])
	}
}

func TestStartRestartsExistingSession(t *testing.T) {
	store, _, _ := trackingStore(unknownSongs(5, 9))
	manager := NewManager(store, NewMemoryStore())

	if _, err := manager.Start("operator-1"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := manager.Submit("operator-1", []string{"house"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Restarting rewinds to the head of the unknown-genre queue.
	turn, err := manager.Start("operator-1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if turn.Song.ID != 5 {
		t.Errorf("Expected restart from song 5, got %d", turn.Song.ID)
	}
}
