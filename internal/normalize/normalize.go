// file: internal/normalize/normalize.go
// version: 1.0.2
// guid: 2c7d9e0f-1a3b-4c5d-8e9f-0a1b2c3d4e5f

package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fallback values used when cleaning leaves nothing behind.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

var (
	topicSuffix    = regexp.MustCompile(`(?i)\s*-\s*Topic$`)
	vevoSuffix     = regexp.MustCompile(`(?i)vevo$`)
	officialSuffix = regexp.MustCompile(`(?i)official(?:\s+audio|\s+video)?$`)

	// Covers the common emoji blocks that show up in channel names and
	// video titles, plus variation selectors and ZWJ sequences.
	emoji = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2190}-\x{21FF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{FE00}-\x{FE0F}\x{200D}]`)
)

// clean strips platform suffixes and emoji from raw catalog text.
// Already-clean input passes through unchanged.
func clean(text string) string {
	text = topicSuffix.ReplaceAllString(text, "")
	text = vevoSuffix.ReplaceAllString(text, "")
	text = officialSuffix.ReplaceAllString(text, "")
	text = emoji.ReplaceAllString(text, "")
	return strings.TrimSpace(norm.NFC.String(text))
}

// CleanTitle normalizes a raw video title.
func CleanTitle(title string) string {
	if cleaned := clean(title); cleaned != "" {
		return cleaned
	}
	return UnknownTitle
}

// CleanArtist normalizes a raw channel or artist name.
func CleanArtist(artist string) string {
	if cleaned := clean(artist); cleaned != "" {
		return cleaned
	}
	return UnknownArtist
}
