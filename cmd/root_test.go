// file: cmd/root_test.go
// version: 1.0.0
// guid: 5e6f7a8b-9c0d-4e1f-8a2b-3c4d5e6f7a8c

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/mixcrate/mixcrate/internal/config"
)

func TestInitConfigCreatesDatabaseDirectory(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db", "test.db")

	origCfgFile := cfgFile
	origDBPath := databasePath
	origConfig := config.AppConfig
	defer func() {
		cfgFile = origCfgFile
		databasePath = origDBPath
		config.AppConfig = origConfig
		viper.Reset()
	}()

	cfgFile = filepath.Join(tempDir, "missing.yaml")
	databasePath = dbPath
	viper.Set("database_path", dbPath)

	initConfig()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Fatalf("expected database directory to exist: %v", err)
	}
	if config.AppConfig.DatabasePath != dbPath {
		t.Errorf("expected config to pick up database path, got %q", config.AppConfig.DatabasePath)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	want := map[string]bool{"scan": false, "serve": false, "register": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered", name)
		}
	}
}
