// file: internal/metadata/lastfm.go
// version: 1.3.1
// guid: 0d5e6f7a-8b9c-4d0e-9f1a-2b3c4d5e6f7a

package metadata

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/mixcrate/mixcrate/internal/models"
	"github.com/mixcrate/mixcrate/internal/normalize"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// LastFMClient fetches track metadata from the Last.fm API.
type LastFMClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewLastFMClient creates a new Last.fm API client.
func NewLastFMClient(apiKey string) *LastFMClient {
	baseURL := os.Getenv("LASTFM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://ws.audioscrobbler.com/2.0/"
	}
	return NewLastFMClientWithBaseURL(baseURL, apiKey)
}

// NewLastFMClientWithBaseURL creates a client with a custom base URL (for testing).
func NewLastFMClientWithBaseURL(baseURL, apiKey string) *LastFMClient {
	return &LastFMClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Name returns the display name for this catalog.
func (c *LastFMClient) Name() string {
	return "Last.fm"
}

type lfmTrack struct {
	Name  string `json:"name"`
	Album struct {
		Title string `json:"title"`
	} `json:"album"`
	TopTags struct {
		Tag []struct {
			Name string `json:"name"`
		} `json:"tag"`
	} `json:"toptags"`
	Wiki struct {
		Published string `json:"published"`
	} `json:"wiki"`
}

type lfmTrackInfoResponse struct {
	Track *lfmTrack `json:"track"`
}

type lfmSearchResponse struct {
	Results struct {
		TrackMatches struct {
			Track []struct {
				Name   string `json:"name"`
				Artist string `json:"artist"`
			} `json:"track"`
		} `json:"trackmatches"`
	} `json:"results"`
}

func (c *LastFMClient) getJSON(params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	resp, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("last.fm request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("last.fm returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("last.fm response decode failed: %w", ErrUnavailable)
	}
	return nil
}

func (c *LastFMClient) getInfo(title, artist string) (*lfmTrack, error) {
	params := url.Values{}
	params.Set("method", "track.getInfo")
	params.Set("track", title)
	params.Set("artist", artist)
	params.Set("autocorrect", "1")

	var info lfmTrackInfoResponse
	if err := c.getJSON(params, &info); err != nil {
		return nil, err
	}
	return info.Track, nil
}

// TrackInfo looks up a track by exact title and artist, falling back to a
// free-text title search whose top match is re-queried for full info. The
// artist is cleaned of platform suffixes first. A nil result means nothing
// usable was found after both attempts.
func (c *LastFMClient) TrackInfo(title, artist string) (*models.MetadataResult, error) {
	artist = normalize.CleanArtist(artist)

	track, err := c.getInfo(title, artist)
	if err != nil {
		return nil, err
	}
	if track != nil {
		return trackToResult(track), nil
	}

	log.Printf("[DEBUG] last.fm: no exact match for %q by %q, trying search", title, artist)

	params := url.Values{}
	params.Set("method", "track.search")
	params.Set("track", title)
	params.Set("limit", "1")

	var search lfmSearchResponse
	if err := c.getJSON(params, &search); err != nil {
		return nil, err
	}

	matches := search.Results.TrackMatches.Track
	if len(matches) == 0 {
		return nil, nil
	}

	track, err = c.getInfo(matches[0].Name, matches[0].Artist)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, nil
	}
	return trackToResult(track), nil
}

// trackToResult maps a Last.fm track to a MetadataResult.
func trackToResult(track *lfmTrack) *models.MetadataResult {
	result := &models.MetadataResult{Album: track.Album.Title}

	for _, tag := range track.TopTags.Tag {
		if tag.Name != "" {
			result.Genres = append(result.Genres, tag.Name)
		}
	}
	if len(result.Genres) > 0 {
		result.PrimaryGenre = result.Genres[0]
	}

	if published := track.Wiki.Published; published != "" {
		if match := yearPattern.FindString(published); match != "" {
			if year, err := strconv.Atoi(match); err == nil {
				result.Year = &year
			}
		}
	}

	if result.Album == "" && len(result.Genres) == 0 && result.Year == nil {
		return nil
	}
	if result.Album == "" {
		result.Album = "Unknown Album"
	}
	return result
}
