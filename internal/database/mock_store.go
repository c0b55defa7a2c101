// file: internal/database/mock_store.go
// version: 1.1.0
// guid: 5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d

package database

import (
	"github.com/mixcrate/mixcrate/internal/models"
)

// MockStore is a simple mock implementation of Store for testing services.
// Unset function fields return zero values.
type MockStore struct {
	InsertSongFunc            func(song *models.Song, genres []string) (int64, bool, error)
	GetSongByIDFunc           func(id int64) (*models.Song, error)
	GetSongByURLFunc          func(url string) (*models.Song, error)
	KnownURLsFunc             func() (map[string]struct{}, error)
	RecentSongsFunc           func(limit int) ([]models.Song, error)
	SearchSongsFunc           func(filter SongFilter) ([]models.Song, error)
	RandomSongFunc            func(genres, userIDs []string) (*models.Song, error)
	SongsWithUnknownGenreFunc func() ([]models.Song, error)
	UpdateSongFunc            func(id int64, update SongUpdate) error
	DeleteSongFunc            func(id int64) error
	DeleteSongsMatchingFunc   func(userID, artist string) ([]models.Song, error)
	CountSongsFunc            func() (int, error)
	AddGenreFunc              func(name string) (int64, error)
	AddGenreToSongFunc        func(songID int64, genre string) error
	GenresOfSongFunc          func(songID int64) ([]string, error)
	SearchGenresFunc          func(query string, limit int) ([]string, error)
}

// Close is a no-op for the mock.
func (m *MockStore) Close() error { return nil }

func (m *MockStore) InsertSong(song *models.Song, genres []string) (int64, bool, error) {
	if m.InsertSongFunc != nil {
		return m.InsertSongFunc(song, genres)
	}
	return 0, false, nil
}

func (m *MockStore) GetSongByID(id int64) (*models.Song, error) {
	if m.GetSongByIDFunc != nil {
		return m.GetSongByIDFunc(id)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetSongByURL(url string) (*models.Song, error) {
	if m.GetSongByURLFunc != nil {
		return m.GetSongByURLFunc(url)
	}
	return nil, ErrNotFound
}

func (m *MockStore) KnownURLs() (map[string]struct{}, error) {
	if m.KnownURLsFunc != nil {
		return m.KnownURLsFunc()
	}
	return map[string]struct{}{}, nil
}

func (m *MockStore) RecentSongs(limit int) ([]models.Song, error) {
	if m.RecentSongsFunc != nil {
		return m.RecentSongsFunc(limit)
	}
	return nil, nil
}

func (m *MockStore) SearchSongs(filter SongFilter) ([]models.Song, error) {
	if m.SearchSongsFunc != nil {
		return m.SearchSongsFunc(filter)
	}
	return nil, nil
}

func (m *MockStore) RandomSong(genres, userIDs []string) (*models.Song, error) {
	if m.RandomSongFunc != nil {
		return m.RandomSongFunc(genres, userIDs)
	}
	return nil, ErrNotFound
}

func (m *MockStore) SongsWithUnknownGenre() ([]models.Song, error) {
	if m.SongsWithUnknownGenreFunc != nil {
		return m.SongsWithUnknownGenreFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateSong(id int64, update SongUpdate) error {
	if m.UpdateSongFunc != nil {
		return m.UpdateSongFunc(id, update)
	}
	return nil
}

func (m *MockStore) DeleteSong(id int64) error {
	if m.DeleteSongFunc != nil {
		return m.DeleteSongFunc(id)
	}
	return nil
}

func (m *MockStore) DeleteSongsMatching(userID, artist string) ([]models.Song, error) {
	if m.DeleteSongsMatchingFunc != nil {
		return m.DeleteSongsMatchingFunc(userID, artist)
	}
	return nil, nil
}

func (m *MockStore) CountSongs() (int, error) {
	if m.CountSongsFunc != nil {
		return m.CountSongsFunc()
	}
	return 0, nil
}

func (m *MockStore) AddGenre(name string) (int64, error) {
	if m.AddGenreFunc != nil {
		return m.AddGenreFunc(name)
	}
	return 0, nil
}

func (m *MockStore) AddGenreToSong(songID int64, genre string) error {
	if m.AddGenreToSongFunc != nil {
		return m.AddGenreToSongFunc(songID, genre)
	}
	return nil
}

func (m *MockStore) GenresOfSong(songID int64) ([]string, error) {
	if m.GenresOfSongFunc != nil {
		return m.GenresOfSongFunc(songID)
	}
	return nil, nil
}

func (m *MockStore) SearchGenres(query string, limit int) ([]string, error) {
	if m.SearchGenresFunc != nil {
		return m.SearchGenresFunc(query, limit)
	}
	return nil, nil
}
