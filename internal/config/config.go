// file: internal/config/config.go
// version: 1.1.0
// guid: 4a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabasePath string
	ChannelFile  string // sidecar file holding the configured music channel id

	Discord struct {
		Token     string
		AppID     string
		PublicKey string
		GuildID   string
		// DisableVerify skips interaction signature checks. Local
		// development only; never set in production.
		DisableVerify bool
	}

	APIKeys struct {
		LastFM  string
		YouTube string
	}
}

var AppConfig Config

// InitConfig initializes the application configuration from viper.
func InitConfig() {
	viper.SetDefault("database_path", "mixcrate.db")
	viper.SetDefault("channel_file", "channel-config.json")

	AppConfig = Config{
		DatabasePath: viper.GetString("database_path"),
		ChannelFile:  viper.GetString("channel_file"),
	}

	AppConfig.Discord.Token = viper.GetString("discord.token")
	AppConfig.Discord.AppID = viper.GetString("discord.app_id")
	AppConfig.Discord.PublicKey = viper.GetString("discord.public_key")
	AppConfig.Discord.GuildID = viper.GetString("discord.guild_id")
	AppConfig.Discord.DisableVerify = viper.GetBool("discord.disable_verify")

	AppConfig.APIKeys.LastFM = viper.GetString("api_keys.lastfm")
	AppConfig.APIKeys.YouTube = viper.GetString("api_keys.youtube")
}
