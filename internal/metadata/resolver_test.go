// file: internal/metadata/resolver_test.go
// version: 1.1.0
// guid: 5f6a7b8c-9d0e-4f1a-8b2c-3d4e5f6a7b8d

package metadata

import (
	"errors"
	"testing"

	"github.com/mixcrate/mixcrate/internal/models"
)

// countingStep records how often it was asked before answering.
func countingStep(name string, calls *int, result *models.MetadataResult, err error) Step {
	return Step{
		Name: name,
		Lookup: func(title, artist string) (*models.MetadataResult, error) {
			*calls++
			return result, err
		},
	}
}

func TestResolveShortCircuitsOnGenres(t *testing.T) {
	var first, second int
	resolver := NewResolverWithSteps([]Step{
		countingStep("first", &first, &models.MetadataResult{Genres: []string{"jazz"}, PrimaryGenre: "jazz"}, nil),
		countingStep("second", &second, &models.MetadataResult{Genres: []string{"rock"}}, nil),
	})

	result := resolver.Resolve("Take Five", "Dave Brubeck")
	if result.PrimaryGenre != "jazz" {
		t.Errorf("Expected first step's result, got %q", result.PrimaryGenre)
	}
	if first != 1 {
		t.Errorf("Expected first step queried once, got %d", first)
	}
	if second != 0 {
		t.Errorf("Expected later steps skipped after a genre hit, got %d calls", second)
	}
}

func TestResolveFallsThroughToTerminalStep(t *testing.T) {
	var first, second, third int
	resolver := NewResolverWithSteps([]Step{
		countingStep("first", &first, nil, nil),
		countingStep("second", &second, &models.MetadataResult{Album: "Some Album"}, nil),
		countingStep("third", &third, &models.MetadataResult{Album: "Terminal Album"}, nil),
	})

	result := resolver.Resolve("Obscure Track", "Obscure Artist")
	if first != 1 || second != 1 || third != 1 {
		t.Errorf("Expected every step queried, got %d/%d/%d", first, second, third)
	}
	// The last step is terminal: its result comes back even without genres.
	if result.Album != "Terminal Album" {
		t.Errorf("Expected terminal step's result, got %q", result.Album)
	}
}

func TestResolveRecoversFromStepErrors(t *testing.T) {
	var first, second int
	resolver := NewResolverWithSteps([]Step{
		countingStep("first", &first, nil, errors.New("boom")),
		countingStep("second", &second, &models.MetadataResult{Genres: []string{"folk"}, PrimaryGenre: "folk"}, nil),
	})

	result := resolver.Resolve("Some Track", "Some Artist")
	if result.PrimaryGenre != "folk" {
		t.Errorf("Expected chain to continue past a failing step, got %q", result.PrimaryGenre)
	}
	if first != 1 || second != 1 {
		t.Errorf("Expected both steps queried, got %d/%d", first, second)
	}
}

func TestResolveNeverReturnsNil(t *testing.T) {
	var calls int
	resolver := NewResolverWithSteps([]Step{
		countingStep("only", &calls, nil, errors.New("down")),
	})

	result := resolver.Resolve("Anything", "Anyone")
	if result == nil {
		t.Fatal("Expected a non-nil empty result when every step fails")
	}
	if result.HasGenres() {
		t.Errorf("Expected empty result, got %+v", result)
	}
}
