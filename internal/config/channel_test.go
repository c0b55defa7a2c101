// file: internal/config/channel_test.go
// version: 1.0.0
// guid: 0c1d2e3f-4a5b-4c6d-8e7f-8a9b0c1d2e3f

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadChannelID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel-config.json")

	if err := SaveChannelID(path, "chan-42"); err != nil {
		t.Fatalf("SaveChannelID failed: %v", err)
	}
	if got := LoadChannelID(path); got != "chan-42" {
		t.Errorf("Expected chan-42, got %q", got)
	}

	// Saving again overwrites.
	if err := SaveChannelID(path, "chan-99"); err != nil {
		t.Fatalf("SaveChannelID failed: %v", err)
	}
	if got := LoadChannelID(path); got != "chan-99" {
		t.Errorf("Expected chan-99, got %q", got)
	}
}

func TestLoadChannelIDMissingFile(t *testing.T) {
	if got := LoadChannelID(filepath.Join(t.TempDir(), "nope.json")); got != "" {
		t.Errorf("Expected empty id for missing file, got %q", got)
	}
}

func TestLoadChannelIDCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channel-config.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := LoadChannelID(path); got != "" {
		t.Errorf("Expected empty id for corrupt file, got %q", got)
	}
}
