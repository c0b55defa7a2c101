// file: internal/metadata/youtube.go
// version: 1.2.0
// guid: 4e7f8a9b-0c1d-4e2f-8a3b-4c5d6e7f8a9b

package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Video is the raw platform metadata for one video: a title, the uploading
// channel (our best artist guess), and the runtime. The video catalog only
// feeds the normalizer; it is not part of the genre fallback chain.
type Video struct {
	Title           string
	ChannelTitle    string
	DurationSeconds int
}

var (
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	isoDurationPart = regexp.MustCompile(`(\d+)([HMS])`)
)

// ExtractVideoID pulls the 11-character video id out of a YouTube link.
// Supported forms: watch?v=, youtu.be/, /shorts/, /embed/, /live/, including
// the music.youtube.com host. Returns "" when no id can be resolved.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
	case "youtube.com", "music.youtube.com", "m.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
		} else {
			for _, prefix := range []string{"/shorts/", "/embed/", "/live/"} {
				if strings.HasPrefix(u.Path, prefix) {
					id = strings.SplitN(strings.TrimPrefix(u.Path, prefix), "/", 2)[0]
					break
				}
			}
		}
	}

	if !videoIDPattern.MatchString(id) {
		return ""
	}
	return id
}

// YouTubeClient fetches video metadata from the YouTube Data API v3.
type YouTubeClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewYouTubeClient creates a new YouTube Data API client.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	baseURL := os.Getenv("YOUTUBE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/youtube/v3"
	}
	return NewYouTubeClientWithBaseURL(baseURL, apiKey)
}

// NewYouTubeClientWithBaseURL creates a client with a custom base URL (for testing).
func NewYouTubeClientWithBaseURL(baseURL, apiKey string) *YouTubeClient {
	return &YouTubeClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Name returns the display name for this catalog.
func (c *YouTubeClient) Name() string {
	return "YouTube"
}

type ytVideosResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// VideoMetadata fetches title, channel and duration for one video id.
// A nil result means the video was not found.
func (c *YouTubeClient) VideoMetadata(videoID string) (*Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	resp, err := c.httpClient.Get(c.baseURL + "/videos?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var videos ytVideosResponse
	if err := json.NewDecoder(resp.Body).Decode(&videos); err != nil {
		return nil, fmt.Errorf("youtube response decode failed: %w", ErrUnavailable)
	}

	if len(videos.Items) == 0 {
		return nil, nil
	}

	item := videos.Items[0]
	return &Video{
		Title:           item.Snippet.Title,
		ChannelTitle:    item.Snippet.ChannelTitle,
		DurationSeconds: parseISODuration(item.ContentDetails.Duration),
	}, nil
}

// parseISODuration converts an ISO-8601 duration like "PT3M33S" to seconds.
func parseISODuration(iso string) int {
	seconds := 0
	for _, match := range isoDurationPart.FindAllStringSubmatch(iso, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		switch match[2] {
		case "H":
			seconds += n * 3600
		case "M":
			seconds += n * 60
		case "S":
			seconds += n
		}
	}
	return seconds
}
