// file: internal/discord/types.go
// version: 1.2.0
// guid: 1f4a5b6c-7d8e-4f9a-8b0c-1d2e3f4a5b6c

package discord

import "fmt"

// Interaction types.
const (
	InteractionTypePing         = 1
	InteractionTypeCommand      = 2
	InteractionTypeComponent    = 3
	InteractionTypeAutocomplete = 4
)

// Interaction response types.
const (
	ResponseTypePong               = 1
	ResponseTypeChannelMessage     = 4
	ResponseTypeDeferredMessage    = 5
	ResponseTypeAutocompleteResult = 8
)

// Message flags.
const (
	FlagSuppressEmbeds = 1 << 2
	FlagEphemeral      = 1 << 6
)

// PermissionAdministrator is the ADMINISTRATOR bit in a member's permission
// bitfield.
const PermissionAdministrator = 0x8

// Application command option types (subset used by mixcrate).
const (
	OptionTypeString  = 3
	OptionTypeInteger = 4
	OptionTypeUser    = 6
	OptionTypeChannel = 7
)

// User is a Discord user as embedded in messages and interactions.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot,omitempty"`
}

// Member is the guild member attached to an interaction.
type Member struct {
	User        User   `json:"user"`
	Permissions string `json:"permissions"`
}

// Message is one channel message from the history endpoint.
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Author    User   `json:"author"`
}

// CommandOption is one option value submitted with a command interaction.
type CommandOption struct {
	Name    string      `json:"name"`
	Value   interface{} `json:"value,omitempty"`
	Focused bool        `json:"focused,omitempty"`
}

// StringValue returns the option value as a string, or "".
func (o *CommandOption) StringValue() string {
	switch v := o.Value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// IntValue returns the option value as an integer, with ok reporting whether
// the value was numeric.
func (o *CommandOption) IntValue() (int64, bool) {
	if v, ok := o.Value.(float64); ok {
		return int64(v), true
	}
	return 0, false
}

// InteractionData is the command payload of an interaction.
type InteractionData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options"`
}

// Option finds an option by name, or returns nil.
func (d *InteractionData) Option(name string) *CommandOption {
	for i := range d.Options {
		if d.Options[i].Name == name {
			return &d.Options[i]
		}
	}
	return nil
}

// FocusedOption returns the option currently being autocompleted, or nil.
func (d *InteractionData) FocusedOption() *CommandOption {
	for i := range d.Options {
		if d.Options[i].Focused {
			return &d.Options[i]
		}
	}
	return nil
}

// Interaction is an inbound request on the interactions endpoint.
type Interaction struct {
	ID     string          `json:"id"`
	Type   int             `json:"type"`
	Token  string          `json:"token"`
	Data   InteractionData `json:"data"`
	Member *Member         `json:"member"`
}

// IsAdmin reports whether the invoking member carries the ADMINISTRATOR bit.
func (i *Interaction) IsAdmin() bool {
	if i.Member == nil {
		return false
	}
	var perms int64
	if _, err := fmt.Sscanf(i.Member.Permissions, "%d", &perms); err != nil {
		return false
	}
	return perms&PermissionAdministrator == PermissionAdministrator
}

// UserID returns the invoking user's id, or "".
func (i *Interaction) UserID() string {
	if i.Member == nil {
		return ""
	}
	return i.Member.User.ID
}

// EmbedField is one field of a message embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter is the footer of a message embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// Embed is a Discord message embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// Choice is one autocomplete suggestion.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResponseData is the payload of an interaction response.
type ResponseData struct {
	Content string   `json:"content,omitempty"`
	Flags   int      `json:"flags,omitempty"`
	Embeds  []Embed  `json:"embeds,omitempty"`
	Choices []Choice `json:"choices,omitempty"`
}

// Response is an outbound interaction response.
type Response struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// CommandOptionSpec describes one option of a registered slash command.
type CommandOptionSpec struct {
	Type         int    `json:"type"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Required     bool   `json:"required,omitempty"`
	Autocomplete bool   `json:"autocomplete,omitempty"`
}

// ApplicationCommand is a slash command registration payload.
type ApplicationCommand struct {
	Name                     string              `json:"name"`
	Description              string              `json:"description"`
	Type                     int                 `json:"type"`
	Options                  []CommandOptionSpec `json:"options,omitempty"`
	DefaultMemberPermissions string              `json:"default_member_permissions,omitempty"`
}
