// file: internal/metadata/musicbrainz_test.go
// version: 1.1.0
// guid: 9f0a1b2c-3d4e-4f5a-8b6c-7d8e9f0a1b2c

package metadata

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewMusicBrainzClient(t *testing.T) {
	t.Setenv("MUSICBRAINZ_BASE_URL", "")
	client := NewMusicBrainzClient()
	if client == nil {
		t.Fatal("Expected non-nil client")
	}
	if client.baseURL != "https://musicbrainz.org/ws/2" {
		t.Errorf("Expected default baseURL, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Fatal("Expected non-nil HTTP client")
	}
}

func TestSearchRecordingByTitle(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recording/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"recordings":[{"title":"Get Lucky","tags":[{"name":"disco"},{"name":"funk"}],"releases":[{"title":"Random Access Memories","date":"2013-05-17"}]}]}`))
	}))
	defer server.Close()

	client := NewMusicBrainzClientWithBaseURL(server.URL)

	result, err := client.SearchRecording("Get Lucky", "")
	if err != nil {
		t.Fatalf("SearchRecording failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}

	if gotQuery != `recording:"Get Lucky"` {
		t.Errorf("Expected title-only lucene query, got %q", gotQuery)
	}
	if result.Album != "Random Access Memories" {
		t.Errorf("Expected album from first release, got %q", result.Album)
	}
	if result.PrimaryGenre != "disco" {
		t.Errorf("Expected first tag as primary genre, got %q", result.PrimaryGenre)
	}
	if len(result.Genres) != 2 {
		t.Errorf("Expected 2 genres, got %d", len(result.Genres))
	}
	if result.Year == nil || *result.Year != 2013 {
		t.Errorf("Expected year 2013, got %v", result.Year)
	}
}

func TestSearchRecordingByArtist(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(`{"recordings":[{"title":"Something","tags":[{"name":"rock"}]}]}`))
	}))
	defer server.Close()

	client := NewMusicBrainzClientWithBaseURL(server.URL)

	result, err := client.SearchRecording("", "Daft Punk")
	if err != nil {
		t.Fatalf("SearchRecording failed: %v", err)
	}
	if gotQuery != `artist:"Daft Punk"` {
		t.Errorf("Expected artist-only lucene query, got %q", gotQuery)
	}
	if result.Album != "Unknown Album" {
		t.Errorf("Expected album fallback with no releases, got %q", result.Album)
	}
}

func TestSearchRecordingNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"recordings":[]}`))
	}))
	defer server.Close()

	client := NewMusicBrainzClientWithBaseURL(server.URL)

	result, err := client.SearchRecording("Nonexistent Song", "")
	if err != nil {
		t.Fatalf("SearchRecording failed: %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result for no match, got %+v", result)
	}
}

func TestSearchRecordingEmptyQuery(t *testing.T) {
	client := NewMusicBrainzClientWithBaseURL("http://unused.invalid")

	result, err := client.SearchRecording("", "")
	if err != nil {
		t.Fatalf("SearchRecording failed: %v", err)
	}
	if result != nil {
		t.Error("Expected nil result with neither title nor artist")
	}
}

func TestSearchRecordingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewMusicBrainzClientWithBaseURL(server.URL)

	_, err := client.SearchRecording("Anything", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}
