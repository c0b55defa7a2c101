// file: internal/discord/client.go
// version: 1.3.0
// guid: 9a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d

package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const messageBatchSize = 100

// Client talks to the Discord REST API as a bot.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a Discord REST client authenticated with the bot token.
func NewClient(token string) *Client {
	baseURL := os.Getenv("DISCORD_BASE_URL")
	if baseURL == "" {
		baseURL = "https://discord.com/api/v10"
	}
	return NewClientWithBaseURL(baseURL, token)
}

// NewClientWithBaseURL creates a client with a custom base URL (for testing).
func NewClientWithBaseURL(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (c *Client) do(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord request failed: %w", err)
	}
	return resp, nil
}

// ChannelMessages pages backwards through a channel's history, newest first,
// until limit messages are collected or the channel is exhausted.
func (c *Client) ChannelMessages(channelID string, limit int) ([]Message, error) {
	if limit < 1 {
		limit = 500
	}

	var all []Message
	var before string
	for len(all) < limit {
		batch := limit - len(all)
		if batch > messageBatchSize {
			batch = messageBatchSize
		}

		params := url.Values{}
		params.Set("limit", fmt.Sprintf("%d", batch))
		if before != "" {
			params.Set("before", before)
		}

		resp, err := c.do(http.MethodGet, "/channels/"+channelID+"/messages?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var messages []Message
		decodeErr := json.NewDecoder(resp.Body).Decode(&messages)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("discord message fetch returned status %d", resp.StatusCode)
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode messages: %w", decodeErr)
		}
		if len(messages) == 0 {
			break
		}

		all = append(all, messages...)
		before = messages[len(messages)-1].ID
		log.Printf("[DEBUG] discord: fetched %d messages, %d total", len(messages), len(all))
	}
	return all, nil
}

// EditOriginal patches the deferred original response of an interaction with
// the final content.
func (c *Client) EditOriginal(appID, interactionToken, content string) error {
	path := fmt.Sprintf("/webhooks/%s/%s/messages/@original", appID, interactionToken)
	resp, err := c.do(http.MethodPatch, path, map[string]string{"content": content})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord follow-up edit returned status %d", resp.StatusCode)
	}
	return nil
}

// RegisterCommands bulk-overwrites the application's slash commands. With a
// guild id the commands are registered to that guild only (instant), without
// one they are registered globally.
func (c *Client) RegisterCommands(appID, guildID string, commands []ApplicationCommand) error {
	path := fmt.Sprintf("/applications/%s/commands", appID)
	if guildID != "" {
		path = fmt.Sprintf("/applications/%s/guilds/%s/commands", appID, guildID)
	}

	resp, err := c.do(http.MethodPut, path, commands)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("command registration returned status %d: %s", resp.StatusCode, body)
	}
	log.Printf("[INFO] discord: registered %d commands", len(commands))
	return nil
}
