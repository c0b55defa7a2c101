// file: internal/ingest/pipeline.go
// version: 1.4.0
// guid: 8d0e1f2a-3b4c-4d5e-8f6a-7b8c9d0e1f2a

package ingest

import (
	"errors"
	"fmt"
	"log"

	ulid "github.com/oklog/ulid/v2"

	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/metadata"
	"github.com/mixcrate/mixcrate/internal/metrics"
	"github.com/mixcrate/mixcrate/internal/models"
	"github.com/mixcrate/mixcrate/internal/normalize"
)

// Resolver is the catalog fallback chain consumed by the pipeline.
type Resolver interface {
	Resolve(title, artist string) *models.MetadataResult
}

// VideoCatalog supplies raw platform metadata for a video id.
type VideoCatalog interface {
	VideoMetadata(videoID string) (*metadata.Video, error)
}

// History fetches channel messages, newest first.
type History interface {
	ChannelMessages(channelID string, limit int) ([]discord.Message, error)
}

// Placeholder values written when no catalog produced the field.
const (
	unknownAlbum = "Unknown Album"
	unknownGenre = "Unknown Genre"
)

// Pipeline turns discovered links into deduplicated, enriched song rows.
type Pipeline struct {
	store    database.Store
	resolver Resolver
	videos   VideoCatalog
	history  History

	// HistoryLimit caps how many messages one scan pages through.
	HistoryLimit int
}

// NewPipeline wires the ingestion pipeline.
func NewPipeline(store database.Store, resolver Resolver, videos VideoCatalog, history History) *Pipeline {
	return &Pipeline{
		store:        store,
		resolver:     resolver,
		videos:       videos,
		history:      history,
		HistoryLimit: 500,
	}
}

// IngestLink enriches and persists one link occurrence, reporting whether a
// new song row was created. Catalog failures degrade to missing metadata and
// never abort the insert.
func (p *Pipeline) IngestLink(occ models.LinkOccurrence) (bool, error) {
	var video *metadata.Video
	if videoID := metadata.ExtractVideoID(occ.URL); videoID != "" && p.videos != nil {
		v, err := p.videos.VideoMetadata(videoID)
		if err != nil {
			log.Printf("[WARN] ingest: video metadata unavailable for %s: %v", occ.URL, err)
		} else {
			video = v
		}
	}

	var rawTitle, rawArtist string
	var duration int
	if video != nil {
		rawTitle = video.Title
		rawArtist = video.ChannelTitle
		duration = video.DurationSeconds
	}

	title := normalize.CleanTitle(rawTitle)
	artist := normalize.CleanArtist(rawArtist)

	result := p.resolver.Resolve(title, artist)

	album := unknownAlbum
	primaryGenre := unknownGenre
	if result != nil {
		if result.Album != "" {
			album = result.Album
		}
		if result.PrimaryGenre != "" {
			primaryGenre = result.PrimaryGenre
		}
	}

	song := &models.Song{
		Title:        title,
		Artist:       artist,
		Album:        &album,
		PrimaryGenre: &primaryGenre,
		Duration:     duration,
		URL:          occ.URL,
		AddedAt:      occ.Timestamp.Unix(),
		UserID:       occ.UserID,
		UserName:     occ.UserName,
	}
	if result != nil {
		song.Year = result.Year
	}

	var genres []string
	if result != nil {
		genres = result.Genres
	}

	_, created, err := p.store.InsertSong(song, genres)
	if err != nil {
		return false, fmt.Errorf("failed to persist song %q: %w", occ.URL, err)
	}
	if created {
		log.Printf("[INFO] ingest: added %q by %q (%s)", title, artist, occ.URL)
	}
	return created, nil
}

// ScanChannel pages through the configured channel, extracts music links,
// skips urls already in the library, and ingests the rest sequentially. One
// link's failure is isolated and does not abort the batch. The optional
// progress callback is invoked after each link.
func (p *Pipeline) ScanChannel(channelID string, progress func(done, total int)) (*models.ScanSummary, error) {
	if p.history == nil {
		return nil, errors.New("no channel history client configured")
	}

	metrics.IncScanStarted()

	messages, err := p.history.ChannelMessages(channelID, p.HistoryLimit)
	if err != nil {
		metrics.IncScanFailed()
		return nil, fmt.Errorf("failed to fetch channel history: %w", err)
	}

	links := ExtractMusicLinks(messages)
	summary := &models.ScanSummary{
		ScanID:       ulid.Make().String(),
		LinksScanned: len(links),
	}

	known, err := p.store.KnownURLs()
	if err != nil {
		metrics.IncScanFailed()
		return nil, fmt.Errorf("failed to load known urls: %w", err)
	}

	for i, occ := range links {
		if _, ok := known[occ.URL]; !ok {
			created, err := p.IngestLink(occ)
			if err != nil {
				// Keep scanning; a single bad link must not sink the batch.
				log.Printf("[ERROR] ingest: scan %s: %v", summary.ScanID, err)
			} else if created {
				summary.NewSongsAdded++
				known[occ.URL] = struct{}{}
			}
		}
		if progress != nil {
			progress(i+1, len(links))
		}
	}

	metrics.IncScanCompleted()
	metrics.AddLinksScanned(summary.LinksScanned)
	metrics.AddSongsAdded(summary.NewSongsAdded)
	if count, err := p.store.CountSongs(); err == nil {
		metrics.SetSongs(count)
	}

	log.Printf("[INFO] ingest: scan %s finished: %d links, %d new songs",
		summary.ScanID, summary.LinksScanned, summary.NewSongsAdded)
	return summary, nil
}
