// file: internal/server/interactions.go
// version: 1.4.0
// guid: 0b1c2d3e-4f5a-4b6c-8d7e-8f9a0b1c2d3e

package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mixcrate/mixcrate/internal/config"
	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/models"
	"github.com/mixcrate/mixcrate/internal/session"
)

// userMentionPattern matches a raw Discord user mention like <@123> or <@!123>.
var userMentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// handleInteraction is the single entry point Discord posts every ping,
// command, and autocomplete request to.
func (s *Server) handleInteraction(c *gin.Context) {
	var interaction discord.Interaction
	if err := c.ShouldBindJSON(&interaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed interaction"})
		return
	}

	switch interaction.Type {
	case discord.InteractionTypePing:
		c.JSON(http.StatusOK, discord.Response{Type: discord.ResponseTypePong})
	case discord.InteractionTypeCommand:
		s.handleCommand(c, &interaction)
	case discord.InteractionTypeAutocomplete:
		s.handleAutocomplete(c, &interaction)
	default:
		log.Printf("[WARN] unknown interaction type %d", interaction.Type)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown interaction type"})
	}
}

func (s *Server) handleCommand(c *gin.Context, interaction *discord.Interaction) {
	switch interaction.Data.Name {
	case "test":
		reply(c, "Hello world, I'm alive!", 0)
	case "setchannel":
		s.cmdSetChannel(c, interaction)
	case "recentsongs":
		s.cmdRecentSongs(c)
	case "scanmusic":
		s.cmdScanMusic(c, interaction)
	case "querysongs":
		s.cmdQuerySongs(c, interaction)
	case "lastfm":
		s.cmdLastFM(c, interaction)
	case "randomsong":
		s.cmdRandomSong(c, interaction)
	case "deletesong":
		s.cmdDeleteSong(c, interaction)
	case "fixgenres":
		s.cmdFixGenres(c, interaction)
	case "setgenre":
		s.cmdSetGenre(c, interaction)
	default:
		log.Printf("[ERROR] unknown command: %s", interaction.Data.Name)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown command"})
	}
}

// reply sends an immediate channel message response.
func reply(c *gin.Context, content string, flags int) {
	c.JSON(http.StatusOK, discord.Response{
		Type: discord.ResponseTypeChannelMessage,
		Data: &discord.ResponseData{Content: content, Flags: flags},
	})
}

// replyEmbeds sends an immediate response carrying embeds.
func replyEmbeds(c *gin.Context, content string, flags int, embeds ...discord.Embed) {
	c.JSON(http.StatusOK, discord.Response{
		Type: discord.ResponseTypeChannelMessage,
		Data: &discord.ResponseData{Content: content, Flags: flags, Embeds: embeds},
	})
}

func (s *Server) cmdSetChannel(c *gin.Context, interaction *discord.Interaction) {
	if !interaction.IsAdmin() {
		reply(c, "You must be an admin to use this command.", discord.FlagEphemeral)
		return
	}

	opt := interaction.Data.Option("channel")
	if opt == nil || opt.StringValue() == "" {
		reply(c, "❌ A channel is required.", discord.FlagEphemeral)
		return
	}
	channelID := opt.StringValue()

	if err := config.SaveChannelID(s.channelFile, channelID); err != nil {
		log.Printf("[ERROR] failed to save channel id: %v", err)
		reply(c, "❌ Failed to save the music channel.", discord.FlagEphemeral)
		return
	}

	log.Printf("[INFO] music channel set to %s", channelID)
	reply(c, fmt.Sprintf("Music channel set to <#%s>", channelID), 0)
}

func (s *Server) cmdRecentSongs(c *gin.Context) {
	songs, err := s.store.RecentSongs(10)
	if err != nil {
		log.Printf("[ERROR] recentsongs: %v", err)
		reply(c, "❌ Failed to fetch recent songs.", discord.FlagSuppressEmbeds)
		return
	}
	if len(songs) == 0 {
		reply(c, "No recent songs found.", discord.FlagSuppressEmbeds)
		return
	}

	embed := songListEmbed("🎵  Recent Songs", "Here are the most recently added songs:", songs)
	embed.Footer = &discord.EmbedFooter{Text: "Use /querysongs to search for specific songs!"}
	replyEmbeds(c, "", 0, embed)
}

func (s *Server) cmdScanMusic(c *gin.Context, interaction *discord.Interaction) {
	channelID := config.LoadChannelID(s.channelFile)
	if channelID == "" {
		reply(c, "❌ No music channel configured. Use /setchannel first.", discord.FlagEphemeral)
		return
	}

	// Defer right away so Discord shows the thinking indicator, then do the
	// heavy work in the background and edit the original reply.
	c.JSON(http.StatusOK, discord.Response{Type: discord.ResponseTypeDeferredMessage})

	token := interaction.Token
	go func() {
		summary, err := s.pipeline.ScanChannel(channelID, nil)

		var content string
		if err != nil {
			log.Printf("[ERROR] scanmusic: %v", err)
			content = "❌ An error occurred while scanning the channel."
		} else {
			content = fmt.Sprintf("✅ Scanned %d links. **%d** new songs added.",
				summary.LinksScanned, summary.NewSongsAdded)
		}
		if err := s.discord.EditOriginal(s.appID, token, content); err != nil {
			log.Printf("[ERROR] scanmusic follow-up: %v", err)
		}
	}()
}

func (s *Server) cmdQuerySongs(c *gin.Context, interaction *discord.Interaction) {
	filter := database.SongFilter{Limit: 10}

	if opt := interaction.Data.Option("user"); opt != nil {
		value := opt.StringValue()
		if m := userMentionPattern.FindStringSubmatch(value); m != nil {
			filter.UserID = m[1]
		} else {
			filter.UserName = value
		}
	}
	if opt := interaction.Data.Option("artist"); opt != nil {
		filter.Artist = opt.StringValue()
	}
	if opt := interaction.Data.Option("title"); opt != nil {
		filter.Title = opt.StringValue()
	}

	songs, err := s.store.SearchSongs(filter)
	if err != nil {
		log.Printf("[ERROR] querysongs: %v", err)
		reply(c, "❌ Something went wrong while searching songs.", discord.FlagSuppressEmbeds)
		return
	}
	if len(songs) == 0 {
		reply(c, "❌ No matching songs found.", discord.FlagSuppressEmbeds)
		return
	}

	embed := songListEmbed("🔍 Query Results", "Here are the songs matching your query:", songs)
	replyEmbeds(c, "", 0, embed)
}

func (s *Server) cmdLastFM(c *gin.Context, interaction *discord.Interaction) {
	opt := interaction.Data.Option("title")
	if opt == nil || strings.TrimSpace(opt.StringValue()) == "" {
		reply(c, "❌ A song title is required.", discord.FlagEphemeral)
		return
	}
	query := strings.TrimSpace(opt.StringValue())

	song, err := s.findSongByTitle(query)
	if err != nil {
		log.Printf("[ERROR] lastfm: title lookup: %v", err)
		reply(c, "❌ Something went wrong while searching songs.", discord.FlagEphemeral)
		return
	}
	if song == nil {
		reply(c, "❌ No song found matching that title.", discord.FlagEphemeral)
		return
	}

	result, err := s.lastfm.TrackInfo(song.Title, song.Artist)
	if err != nil || result == nil {
		if err != nil {
			log.Printf("[ERROR] lastfm: enrich song %d: %v", song.ID, err)
		}
		reply(c, "❌ Failed to update song metadata with Last.fm.", discord.FlagSuppressEmbeds)
		return
	}

	var update database.SongUpdate
	if result.Album != "" {
		update.Album = &result.Album
	}
	if result.Year != nil {
		update.Year = result.Year
	}
	if result.PrimaryGenre != "" {
		update.PrimaryGenre = &result.PrimaryGenre
	}
	if !update.IsZero() {
		if err := s.store.UpdateSong(song.ID, update); err != nil {
			log.Printf("[ERROR] lastfm: update song %d: %v", song.ID, err)
			reply(c, "❌ Failed to update song metadata with Last.fm.", discord.FlagSuppressEmbeds)
			return
		}
	}
	for _, genre := range result.Genres {
		if err := s.store.AddGenreToSong(song.ID, genre); err != nil {
			log.Printf("[WARN] lastfm: tag song %d with %q: %v", song.ID, genre, err)
		}
	}

	updated, err := s.store.GetSongByID(song.ID)
	if err != nil {
		log.Printf("[ERROR] lastfm: reload song %d: %v", song.ID, err)
		reply(c, "❌ Failed to update song metadata with Last.fm.", discord.FlagSuppressEmbeds)
		return
	}
	replyEmbeds(c, "✅ Metadata updated!", 0, songEmbed(updated))
}

// findSongByTitle picks the newest song whose title contains the query, and
// falls back to a fuzzy match over every stored title when the substring
// search comes up empty.
func (s *Server) findSongByTitle(query string) (*models.Song, error) {
	matches, err := s.store.SearchSongs(database.SongFilter{Title: query, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return &matches[0], nil
	}

	all, err := s.store.SearchSongs(database.SongFilter{})
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(all))
	for i := range all {
		titles[i] = all[i].Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	if len(ranks) == 0 {
		return nil, nil
	}
	sort.Sort(ranks)
	return &all[ranks[0].OriginalIndex], nil
}

func (s *Server) cmdRandomSong(c *gin.Context, interaction *discord.Interaction) {
	var genres, userIDs []string
	for _, name := range []string{"genre1", "genre2", "genre3"} {
		if opt := interaction.Data.Option(name); opt != nil && opt.StringValue() != "" {
			genres = append(genres, strings.ToLower(opt.StringValue()))
		}
	}
	for _, name := range []string{"user1", "user2", "user3"} {
		if opt := interaction.Data.Option(name); opt != nil && opt.StringValue() != "" {
			userIDs = append(userIDs, opt.StringValue())
		}
	}

	song, err := s.store.RandomSong(genres, userIDs)
	if errors.Is(err, database.ErrNotFound) {
		reply(c, "❌ No matching songs found for that genre/user combo.", discord.FlagSuppressEmbeds)
		return
	}
	if err != nil {
		log.Printf("[ERROR] randomsong: %v", err)
		reply(c, "❌ Something went wrong while picking a song.", discord.FlagSuppressEmbeds)
		return
	}
	replyEmbeds(c, "", 0, songEmbed(song))
}

func (s *Server) cmdDeleteSong(c *gin.Context, interaction *discord.Interaction) {
	userID := interaction.UserID()
	isAdmin := interaction.IsAdmin()

	ownedOrAdmin := func(song *models.Song) bool {
		return song != nil && (isAdmin || song.UserID == userID)
	}

	var toDelete []models.Song

	// Priority: ID > URL > Title
	if opt := interaction.Data.Option("id"); opt != nil {
		if id, ok := opt.IntValue(); ok {
			if song, err := s.store.GetSongByID(id); err == nil && ownedOrAdmin(song) {
				toDelete = append(toDelete, *song)
			}
		}
	} else if opt := interaction.Data.Option("url"); opt != nil && opt.StringValue() != "" {
		if song, err := s.store.GetSongByURL(opt.StringValue()); err == nil && ownedOrAdmin(song) {
			toDelete = append(toDelete, *song)
		}
	} else if opt := interaction.Data.Option("title"); opt != nil && opt.StringValue() != "" {
		matches, err := s.store.SearchSongs(database.SongFilter{Title: opt.StringValue()})
		if err != nil {
			log.Printf("[ERROR] deletesong: title search: %v", err)
		}
		for i := range matches {
			if ownedOrAdmin(&matches[i]) {
				toDelete = append(toDelete, matches[i])
			}
		}
	}

	// Admin-only mass deletions
	if isAdmin {
		var purgeUser, purgeArtist string
		if opt := interaction.Data.Option("user"); opt != nil {
			purgeUser = opt.StringValue()
		}
		if opt := interaction.Data.Option("artist"); opt != nil {
			purgeArtist = opt.StringValue()
		}
		if purgeUser != "" || purgeArtist != "" {
			purged, err := s.store.DeleteSongsMatching(purgeUser, purgeArtist)
			if err != nil {
				log.Printf("[ERROR] deletesong: purge: %v", err)
			}
			toDelete = append(toDelete, purged...)
		}
	}

	// Deduplicate; the purge path already deleted its rows.
	seen := make(map[int64]struct{}, len(toDelete))
	deleted := make([]models.Song, 0, len(toDelete))
	for _, song := range toDelete {
		if _, ok := seen[song.ID]; ok {
			continue
		}
		seen[song.ID] = struct{}{}
		if err := s.store.DeleteSong(song.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
			log.Printf("[ERROR] deletesong: delete %d: %v", song.ID, err)
			continue
		}
		deleted = append(deleted, song)
	}

	if len(deleted) == 0 {
		reply(c, "❌ No matching songs found to delete or permission denied.", discord.FlagEphemeral)
		return
	}

	lines := make([]string, 0, 5)
	for i, song := range deleted {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("**%s** by %s", song.Title, song.Artist))
	}
	content := fmt.Sprintf("🗑️ Deleted %d song(s):\n%s", len(deleted), strings.Join(lines, "\n"))
	if len(deleted) > 5 {
		content += fmt.Sprintf("\n...and %d more.", len(deleted)-5)
	}
	reply(c, content, 0)
}

func (s *Server) cmdFixGenres(c *gin.Context, interaction *discord.Interaction) {
	turn, err := s.sessions.Start(interaction.UserID())
	if err != nil {
		log.Printf("[ERROR] fixgenres: %v", err)
		reply(c, "❌ Failed to start a genre fix session.", discord.FlagEphemeral)
		return
	}
	if turn.Done {
		reply(c, `✅ No songs left with "Unknown Genre".`, discord.FlagEphemeral)
		return
	}

	embed := songEmbed(turn.Song)
	embed.Footer = &discord.EmbedFooter{Text: turn.Prompt}
	replyEmbeds(c, "🎧 Genre fix session started. Please assign a genre.", discord.FlagEphemeral, embed)
}

func (s *Server) cmdSetGenre(c *gin.Context, interaction *discord.Interaction) {
	var genres []string
	for _, name := range []string{"genre1", "genre2", "genre3", "genre4"} {
		if opt := interaction.Data.Option(name); opt != nil && opt.StringValue() != "" {
			genres = append(genres, opt.StringValue())
		}
	}

	turn, err := s.sessions.Submit(interaction.UserID(), genres)
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		reply(c, "No genre fix session in progress.", discord.FlagEphemeral)
		return
	case errors.Is(err, session.ErrNoGenres):
		reply(c, "❌ You must provide at least one genre.", discord.FlagEphemeral)
		return
	case err != nil:
		log.Printf("[ERROR] setgenre: %v", err)
		reply(c, "❌ Failed to save genres.", discord.FlagEphemeral)
		return
	}

	saved := strings.Join(turn.GenresSaved, ", ")
	if turn.Done {
		reply(c, fmt.Sprintf("✅ Genre(s) saved: %s. No more songs left to fix.", saved), discord.FlagEphemeral)
		return
	}

	embed := songEmbed(turn.Song)
	embed.Footer = &discord.EmbedFooter{Text: turn.Prompt}
	replyEmbeds(c, fmt.Sprintf("✅ Genre(s) saved: %s.\nNext song below:", saved), discord.FlagEphemeral, embed)
}

// handleAutocomplete suggests genres for any focused option named genre*.
func (s *Server) handleAutocomplete(c *gin.Context, interaction *discord.Interaction) {
	var choices []discord.Choice

	focused := interaction.Data.FocusedOption()
	if focused != nil && strings.HasPrefix(focused.Name, "genre") {
		names, err := s.store.SearchGenres(strings.ToLower(focused.StringValue()), 25)
		if err != nil {
			log.Printf("[ERROR] genre autocomplete: %v", err)
		}
		for _, name := range names {
			choices = append(choices, discord.Choice{Name: name, Value: strings.ToLower(name)})
		}
	}

	c.JSON(http.StatusOK, discord.Response{
		Type: discord.ResponseTypeAutocompleteResult,
		Data: &discord.ResponseData{Choices: choices},
	})
}
