// file: internal/metadata/lastfm_test.go
// version: 1.1.0
// guid: 1b2c3d4e-5f6a-4b7c-8d8e-9f0a1b2c3d4f

package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrackInfoDirectHit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("method") != "track.getInfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"track":{"name":"One More Time","album":{"title":"Discovery"},"toptags":{"tag":[{"name":"house"},{"name":"electronic"}]},"wiki":{"published":"12 Mar 2001, 14:22"}}}`))
	}))
	defer server.Close()

	client := NewLastFMClientWithBaseURL(server.URL, "test-key")

	result, err := client.TrackInfo("One More Time", "Daft Punk")
	if err != nil {
		t.Fatalf("TrackInfo failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected non-nil result")
	}
	if result.Album != "Discovery" {
		t.Errorf("Expected album Discovery, got %q", result.Album)
	}
	if result.PrimaryGenre != "house" {
		t.Errorf("Expected primary genre house, got %q", result.PrimaryGenre)
	}
	if result.Year == nil || *result.Year != 2001 {
		t.Errorf("Expected year 2001 from wiki date, got %v", result.Year)
	}
}

func TestTrackInfoCleansArtist(t *testing.T) {
	var gotArtist string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotArtist = r.URL.Query().Get("artist")
		_, _ = w.Write([]byte(`{"track":{"name":"Style","album":{"title":"1989"},"toptags":{"tag":[{"name":"pop"}]}}}`))
	}))
	defer server.Close()

	client := NewLastFMClientWithBaseURL(server.URL, "test-key")

	if _, err := client.TrackInfo("Style", "TaylorSwiftVEVO"); err != nil {
		t.Fatalf("TrackInfo failed: %v", err)
	}
	if gotArtist != "TaylorSwift" {
		t.Errorf("Expected cleaned artist TaylorSwift, got %q", gotArtist)
	}
}

func TestTrackInfoSearchFallback(t *testing.T) {
	getInfoCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("method") {
		case "track.getInfo":
			getInfoCalls++
			if getInfoCalls == 1 {
				// First exact lookup misses.
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"track":{"name":"Teardrop","album":{"title":"Mezzanine"},"toptags":{"tag":[{"name":"trip-hop"}]}}}`))
		case "track.search":
			_, _ = w.Write([]byte(`{"results":{"trackmatches":{"track":[{"name":"Teardrop","artist":"Massive Attack"}]}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewLastFMClientWithBaseURL(server.URL, "test-key")

	result, err := client.TrackInfo("teardrop", "SomeUploader")
	if err != nil {
		t.Fatalf("TrackInfo failed: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result from search fallback")
	}
	if result.Album != "Mezzanine" {
		t.Errorf("Expected album Mezzanine, got %q", result.Album)
	}
	if getInfoCalls != 2 {
		t.Errorf("Expected getInfo to be retried with the search match, got %d calls", getInfoCalls)
	}
}

func TestTrackInfoNothingUsable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("method") {
		case "track.getInfo":
			_, _ = w.Write([]byte(`{}`))
		case "track.search":
			_, _ = w.Write([]byte(`{"results":{"trackmatches":{"track":[]}}}`))
		}
	}))
	defer server.Close()

	client := NewLastFMClientWithBaseURL(server.URL, "test-key")

	result, err := client.TrackInfo("Gibberish", "Nobody")
	if err != nil {
		t.Fatalf("TrackInfo failed: %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result, got %+v", result)
	}
}

func TestTrackToResultEmptyTrack(t *testing.T) {
	if result := trackToResult(&lfmTrack{Name: "Empty"}); result != nil {
		t.Errorf("Expected nil for track with no album, tags, or year, got %+v", result)
	}
}
