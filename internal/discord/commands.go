// file: internal/discord/commands.go
// version: 1.1.0
// guid: 3e5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a7b

package discord

// adminOnly is the default_member_permissions value restricting a command to
// administrators.
const adminOnly = "8"

// Commands returns the full slash-command surface for bulk registration.
func Commands() []ApplicationCommand {
	genreOption := func(name, description string, required bool) CommandOptionSpec {
		return CommandOptionSpec{
			Type:         OptionTypeString,
			Name:         name,
			Description:  description,
			Required:     required,
			Autocomplete: true,
		}
	}

	return []ApplicationCommand{
		{
			Name:        "test",
			Description: "Basic liveness check",
			Type:        1,
		},
		{
			Name:        "setchannel",
			Description: "Set the music channel",
			Type:        1,
			Options: []CommandOptionSpec{
				{Type: OptionTypeChannel, Name: "channel", Description: "The channel to scan for music links", Required: true},
			},
			DefaultMemberPermissions: adminOnly,
		},
		{
			Name:        "recentsongs",
			Description: "Get the last 10 songs added to the music channel",
			Type:        1,
		},
		{
			Name:        "scanmusic",
			Description: "Scan the music channel for links not yet in the library",
			Type:        1,
		},
		{
			Name:        "querysongs",
			Description: "Search songs by user, artist, or title",
			Type:        1,
			Options: []CommandOptionSpec{
				{Type: OptionTypeString, Name: "user", Description: "Username or user mention", Required: false},
				{Type: OptionTypeString, Name: "artist", Description: "Artist name (partial match allowed)", Required: false},
				{Type: OptionTypeString, Name: "title", Description: "Song title (partial match allowed)", Required: false},
			},
		},
		{
			Name:        "lastfm",
			Description: "Update song metadata with Last.fm data",
			Type:        1,
			Options: []CommandOptionSpec{
				{Type: OptionTypeString, Name: "title", Description: "The title of the song to update", Required: true},
			},
		},
		{
			Name:        "randomsong",
			Description: "Get a random song from the library",
			Type:        1,
			Options: []CommandOptionSpec{
				genreOption("genre1", "First genre", false),
				genreOption("genre2", "Second genre", false),
				genreOption("genre3", "Third genre", false),
				{Type: OptionTypeUser, Name: "user1", Description: "First user", Required: false},
				{Type: OptionTypeUser, Name: "user2", Description: "Second user", Required: false},
				{Type: OptionTypeUser, Name: "user3", Description: "Third user", Required: false},
			},
		},
		{
			Name:        "deletesong",
			Description: "Delete a song or set of songs from the library",
			Type:        1,
			Options: []CommandOptionSpec{
				{Type: OptionTypeString, Name: "url", Description: "URL of the song to delete", Required: false},
				{Type: OptionTypeInteger, Name: "id", Description: "Song ID to delete", Required: false},
				{Type: OptionTypeString, Name: "title", Description: "Delete song(s) by title (partial match)", Required: false},
				{Type: OptionTypeUser, Name: "user", Description: "Delete all songs added by this user (admin only)", Required: false},
				{Type: OptionTypeString, Name: "artist", Description: "Delete all songs by artist (admin only)", Required: false},
			},
		},
		{
			Name:                     "fixgenres",
			Description:              "Step through songs with unknown genres",
			Type:                     1,
			DefaultMemberPermissions: adminOnly,
		},
		{
			Name:        "setgenre",
			Description: "Set one or more genres for the current song",
			Type:        1,
			Options: []CommandOptionSpec{
				genreOption("genre1", "Primary genre", true),
				genreOption("genre2", "Secondary genre (optional)", false),
				genreOption("genre3", "Third genre (optional)", false),
				genreOption("genre4", "Fourth genre (optional)", false),
			},
		},
	}
}
