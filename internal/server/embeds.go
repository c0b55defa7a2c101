// file: internal/server/embeds.go
// version: 1.1.0
// guid: 8a9b0c1d-2e3f-4a4b-9c5d-6e7f8a9b0c1d

package server

import (
	"fmt"
	"time"

	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/models"
)

// embedColor is the accent color used on every song embed.
const embedColor = 0x1db954

const unknownAlbum = "Unknown Album"

// songEmbed renders one song as a rich embed.
func songEmbed(song *models.Song) discord.Embed {
	var fields []discord.EmbedField
	if song.Album != nil && *song.Album != "" {
		fields = append(fields, discord.EmbedField{Name: "Album", Value: *song.Album, Inline: true})
	}
	if song.PrimaryGenre != nil && *song.PrimaryGenre != "" {
		fields = append(fields, discord.EmbedField{Name: "Genre", Value: *song.PrimaryGenre, Inline: true})
	}
	if song.Year != nil {
		fields = append(fields, discord.EmbedField{Name: "Year", Value: fmt.Sprintf("%d", *song.Year), Inline: true})
	}
	if song.Duration > 0 {
		fields = append(fields, discord.EmbedField{Name: "Length", Value: fmt.Sprintf("%ds", song.Duration), Inline: true})
	}

	added := time.Unix(song.AddedAt, 0).UTC().Format("Jan 2, 2006")
	return discord.Embed{
		Title:       "🎧  " + song.Title,
		URL:         song.URL,
		Description: fmt.Sprintf("by **%s**\nAdded by <@%s>", song.Artist, song.UserID),
		Color:       embedColor,
		Fields:      fields,
		Footer:      &discord.EmbedFooter{Text: fmt.Sprintf("Added on %s • ID %d", added, song.ID)},
	}
}

// songListEmbed renders a batch of songs as one embed with a field per song.
func songListEmbed(title, description string, songs []models.Song) discord.Embed {
	fields := make([]discord.EmbedField, 0, len(songs))
	for i := range songs {
		song := &songs[i]

		genre := "Unknown genre"
		if song.PrimaryGenre != nil && *song.PrimaryGenre != "" {
			genre = *song.PrimaryGenre
		}
		value := fmt.Sprintf("**[Link to Song](%s)**\n", song.URL)
		if song.Album != nil && *song.Album != "" && *song.Album != unknownAlbum {
			value += fmt.Sprintf("**Album**: %s\n", *song.Album)
		}
		value += fmt.Sprintf("**Genre**: %s\n**Added by**: <@%s> on <t:%d:F>",
			genre, song.UserID, song.AddedAt)

		fields = append(fields, discord.EmbedField{
			Name:  fmt.Sprintf("**%s** by **%s**", song.Title, song.Artist),
			Value: value,
		})
	}
	return discord.Embed{
		Title:       title,
		Description: description,
		Color:       embedColor,
		Fields:      fields,
	}
}
