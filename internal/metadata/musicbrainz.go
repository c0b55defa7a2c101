// file: internal/metadata/musicbrainz.go
// version: 1.4.0
// guid: 6b3c4d5e-7f8a-4b9c-8d0e-1f2a3b4c5d6e

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mixcrate/mixcrate/internal/models"
)

const musicBrainzUserAgent = "mixcrate/1.0 (https://github.com/mixcrate/mixcrate)"

// MusicBrainzClient fetches recording metadata from the MusicBrainz API.
// MusicBrainz asks anonymous clients to stay at or below one request per
// second, so all lookups go through a shared rate limiter.
type MusicBrainzClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewMusicBrainzClient creates a new MusicBrainz API client.
func NewMusicBrainzClient() *MusicBrainzClient {
	baseURL := os.Getenv("MUSICBRAINZ_BASE_URL")
	if baseURL == "" {
		baseURL = "https://musicbrainz.org/ws/2"
	}
	return NewMusicBrainzClientWithBaseURL(baseURL)
}

// NewMusicBrainzClientWithBaseURL creates a client with a custom base URL (for testing).
func NewMusicBrainzClientWithBaseURL(baseURL string) *MusicBrainzClient {
	return &MusicBrainzClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Name returns the display name for this catalog.
func (c *MusicBrainzClient) Name() string {
	return "MusicBrainz"
}

type mbTag struct {
	Name string `json:"name"`
}

type mbRelease struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type mbRecording struct {
	Title    string      `json:"title"`
	Tags     []mbTag     `json:"tags"`
	Releases []mbRelease `json:"releases"`
}

type mbSearchResponse struct {
	Recordings []mbRecording `json:"recordings"`
}

// SearchRecording queries MusicBrainz by recording title, artist name, or
// both, and maps the first hit to a MetadataResult. A nil result means no
// match was found.
func (c *MusicBrainzClient) SearchRecording(title, artist string) (*models.MetadataResult, error) {
	var parts []string
	if title != "" {
		parts = append(parts, fmt.Sprintf("recording:%q", title))
	}
	if artist != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", artist))
	}
	if len(parts) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", strings.Join(parts, " AND "))
	params.Set("fmt", "json")
	params.Set("limit", "5")

	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("musicbrainz limiter: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/recording/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz request: %w", err)
	}
	req.Header.Set("User-Agent", musicBrainzUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz search failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("musicbrainz search returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var search mbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("musicbrainz response decode failed: %w", ErrUnavailable)
	}

	if len(search.Recordings) == 0 {
		return nil, nil
	}
	return recordingToResult(&search.Recordings[0]), nil
}

// recordingToResult maps the first/best MusicBrainz hit to a MetadataResult.
func recordingToResult(rec *mbRecording) *models.MetadataResult {
	result := &models.MetadataResult{Album: "Unknown Album"}

	if len(rec.Releases) > 0 {
		if rec.Releases[0].Title != "" {
			result.Album = rec.Releases[0].Title
		}
		if date := rec.Releases[0].Date; len(date) >= 4 {
			if year, err := strconv.Atoi(date[:4]); err == nil {
				result.Year = &year
			}
		}
	}

	for _, tag := range rec.Tags {
		if tag.Name != "" {
			result.Genres = append(result.Genres, tag.Name)
		}
	}
	if len(result.Genres) > 0 {
		result.PrimaryGenre = result.Genres[0]
	}
	return result
}
