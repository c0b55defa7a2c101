// file: internal/config/channel.go
// version: 1.0.0
// guid: 8b0c1d2e-3f4a-4b5c-9d6e-7f8a9b0c1d2e

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type channelConfig struct {
	TargetChannelID string `json:"target_channel_id"`
}

// SaveChannelID persists the configured music channel id to the sidecar file.
func SaveChannelID(path, channelID string) error {
	data, err := json.Marshal(channelConfig{TargetChannelID: channelID})
	if err != nil {
		return fmt.Errorf("failed to marshal channel config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write channel config: %w", err)
	}
	return nil
}

// LoadChannelID reads the configured music channel id, returning "" when no
// channel has been set yet.
func LoadChannelID(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg channelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.TargetChannelID
}
