// file: internal/metadata/resolver.go
// version: 1.1.0
// guid: 2a9b0c1d-3e4f-4a5b-9c6d-7e8f9a0b1c2d

package metadata

import (
	"log"

	"github.com/mixcrate/mixcrate/internal/metrics"
	"github.com/mixcrate/mixcrate/internal/models"
)

// Resolver runs the catalog fallback chain. Catalogs are tried in a fixed
// order and the chain stops at the first result carrying at least one genre;
// the final step is terminal and its result is returned even when it has no
// genres. Reordering or adding catalogs is a data change to the steps slice,
// not a control-flow change.
type Resolver struct {
	steps []Step
}

// NewResolver builds the production chain:
//  1. MusicBrainz by title only
//  2. Last.fm by cleaned title+artist
//  3. MusicBrainz by artist only (terminal)
//
// No catalog is authoritative and genre presence is the scarcest signal, so
// the first responder with a genre wins.
func NewResolver(mb *MusicBrainzClient, lfm *LastFMClient) *Resolver {
	return NewResolverWithSteps([]Step{
		{
			Name: "musicbrainz-title",
			Lookup: func(title, _ string) (*models.MetadataResult, error) {
				return mb.SearchRecording(title, "")
			},
		},
		{
			Name: "lastfm-track",
			Lookup: func(title, artist string) (*models.MetadataResult, error) {
				return lfm.TrackInfo(title, artist)
			},
		},
		{
			Name: "musicbrainz-artist",
			Lookup: func(_, artist string) (*models.MetadataResult, error) {
				return mb.SearchRecording("", artist)
			},
		},
	})
}

// NewResolverWithSteps builds a resolver over an explicit chain (for testing).
func NewResolverWithSteps(steps []Step) *Resolver {
	return &Resolver{steps: steps}
}

// Resolve walks the chain for one track. It never fails: catalog errors
// degrade to "no result" and an empty result is a valid outcome.
func (r *Resolver) Resolve(title, artist string) *models.MetadataResult {
	last := len(r.steps) - 1
	for i, step := range r.steps {
		metrics.IncProviderLookup(step.Name)

		result, err := step.Lookup(title, artist)
		if err != nil {
			metrics.IncProviderFailure(step.Name)
			log.Printf("[WARN] resolver: %s lookup failed for %q by %q: %v", step.Name, title, artist, err)
			result = nil
		}

		if result.HasGenres() {
			log.Printf("[DEBUG] resolver: %s resolved genres for %q by %q", step.Name, title, artist)
			return result
		}
		if i == last && result != nil {
			return result
		}
	}
	return &models.MetadataResult{}
}
