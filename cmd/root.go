// file: cmd/root.go
// version: 1.3.0
// guid: 3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mixcrate/mixcrate/internal/config"
	"github.com/mixcrate/mixcrate/internal/database"
	"github.com/mixcrate/mixcrate/internal/discord"
	"github.com/mixcrate/mixcrate/internal/ingest"
	"github.com/mixcrate/mixcrate/internal/metadata"
	"github.com/mixcrate/mixcrate/internal/server"
	"github.com/mixcrate/mixcrate/internal/session"
)

var cfgFile string
var databasePath string
var channelFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mixcrate",
	Short: "Collect and catalog music links shared in a Discord channel",
	Long: `Mixcrate watches a Discord music channel for YouTube links, enriches
each track with metadata from MusicBrainz and Last.fm, and keeps the
resulting library in SQLite.

It answers slash commands for searching, random picks, and cleaning up
songs whose genre could not be resolved automatically.`,
}

// buildPipeline assembles the ingestion pipeline from the current config.
func buildPipeline() *ingest.Pipeline {
	mb := metadata.NewMusicBrainzClient()
	lfm := metadata.NewLastFMClient(config.AppConfig.APIKeys.LastFM)
	resolver := metadata.NewResolver(mb, lfm)

	var videos ingest.VideoCatalog
	if config.AppConfig.APIKeys.YouTube != "" {
		videos = metadata.NewYouTubeClient(config.AppConfig.APIKeys.YouTube)
	}

	bot := discord.NewClient(config.AppConfig.Discord.Token)
	return ingest.NewPipeline(database.GlobalStore, resolver, videos, bot)
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the configured music channel from the command line",
	Long:  `Scan the configured Discord channel for YouTube links and add any new songs to the library.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		channelID := config.LoadChannelID(config.AppConfig.ChannelFile)
		if channel := cmd.Flag("channel").Value.String(); channel != "" {
			channelID = channel
		}
		if channelID == "" {
			return fmt.Errorf("no music channel configured; pass --channel or use /setchannel")
		}

		if err := database.InitializeStore(config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)
		fmt.Printf("Scanning channel: %s\n", channelID)

		pipeline := buildPipeline()

		var bar *progressbar.ProgressBar
		summary, err := pipeline.ScanChannel(channelID, func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "scanning links")
			}
			bar.Set(done)
		})
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		fmt.Printf("Scanned %d links, added %d new songs (scan %s)\n",
			summary.LinksScanned, summary.NewSongsAdded, summary.ScanID)
		return nil
	},
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the slash commands with Discord",
	Long: `Register mixcrate's slash commands with Discord. With a guild id the
commands are installed to that guild only, which takes effect instantly;
without one they are installed globally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appID := config.AppConfig.Discord.AppID
		if appID == "" {
			return fmt.Errorf("discord app id not configured")
		}

		bot := discord.NewClient(config.AppConfig.Discord.Token)
		if err := bot.RegisterCommands(appID, config.AppConfig.Discord.GuildID, discord.Commands()); err != nil {
			return fmt.Errorf("failed to register commands: %w", err)
		}
		fmt.Println("Slash commands registered")
		return nil
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactions server",
	Long:  `Start the HTTP server that receives Discord interactions and serves metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s\n", config.AppConfig.DatabasePath)

		bot := discord.NewClient(config.AppConfig.Discord.Token)
		sessions := session.NewManager(database.GlobalStore, session.NewMemoryStore())
		lfm := metadata.NewLastFMClient(config.AppConfig.APIKeys.LastFM)

		srv := server.NewServer(server.Options{
			Store:         database.GlobalStore,
			Sessions:      sessions,
			Pipeline:      buildPipeline(),
			Discord:       bot,
			LastFM:        lfm,
			AppID:         config.AppConfig.Discord.AppID,
			PublicKey:     config.AppConfig.Discord.PublicKey,
			ChannelFile:   config.AppConfig.ChannelFile,
			DisableVerify: config.AppConfig.Discord.DisableVerify,
		})

		cfg := server.ServerConfig{
			Port:         "8080",
			Host:         "",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mixcrate.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "mixcrate.db", "path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&channelFile, "channel-file", "channel-config.json", "file storing the configured music channel id")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("channel_file", rootCmd.PersistentFlags().Lookup("channel-file"))

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(serveCmd)

	scanCmd.Flags().String("channel", "", "channel id to scan (overrides the saved channel)")

	serveCmd.Flags().String("port", "8080", "port to run the interactions server on")
	serveCmd.Flags().String("host", "", "host to bind the interactions server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mixcrate")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}
