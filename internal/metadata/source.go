// file: internal/metadata/source.go
// version: 1.2.0
// guid: 8c1d2e3f-4a5b-4c6d-9e7f-0a1b2c3d4e5f

package metadata

import (
	"errors"

	"github.com/mixcrate/mixcrate/internal/models"
)

// ErrUnavailable marks any network or non-2xx failure from a catalog.
// Callers treat it as "no result", never as fatal.
var ErrUnavailable = errors.New("metadata provider unavailable")

// LookupFunc queries one catalog for track metadata. A nil result with a nil
// error means the catalog had no match.
type LookupFunc func(title, artist string) (*models.MetadataResult, error)

// Step is one entry in the resolver's fallback chain.
type Step struct {
	Name   string
	Lookup LookupFunc
}
