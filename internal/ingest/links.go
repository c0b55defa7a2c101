// file: internal/ingest/links.go
// version: 1.0.1
// guid: 5b7c8d9e-0f1a-4b2c-9d3e-4f5a6b7c8d9e

package ingest

import (
	"regexp"
	"time"

	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/models"
)

var youtubeLinkPattern = regexp.MustCompile(
	`https?://(?:www\.)?(?:music\.)?youtube\.com/[^\s]+|https?://youtu\.be/[^\s]+`)

// ExtractMusicLinks pulls every YouTube link out of the given messages in
// order, skipping messages authored by bots. One message can contribute
// several occurrences.
func ExtractMusicLinks(messages []discord.Message) []models.LinkOccurrence {
	var links []models.LinkOccurrence
	for _, msg := range messages {
		if msg.Author.Bot {
			continue
		}
		urls := youtubeLinkPattern.FindAllString(msg.Content, -1)
		if len(urls) == 0 {
			continue
		}

		timestamp, err := time.Parse(time.RFC3339, msg.Timestamp)
		if err != nil {
			timestamp = time.Now().UTC()
		}

		for _, url := range urls {
			links = append(links, models.LinkOccurrence{
				URL:       url,
				UserID:    msg.Author.ID,
				UserName:  msg.Author.Username,
				Timestamp: timestamp,
			})
		}
	}
	return links
}
