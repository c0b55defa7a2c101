// file: internal/metrics/metrics.go
// version: 1.0.1
// guid: 3d9e0f1a-2b4c-4d5e-9f6a-7b8c9d0e1f2a

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	scansStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "scans_started_total",
		Help:      "Total number of channel scans started",
	})
	scansCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "scans_completed_total",
		Help:      "Total number of channel scans completed",
	})
	scansFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "scans_failed_total",
		Help:      "Total number of channel scans that failed",
	})
	linksScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "links_scanned_total",
		Help:      "Total number of music links discovered by scans",
	})
	songsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "songs_added_total",
		Help:      "Total number of new songs persisted",
	})
	providerLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "provider_lookups_total",
		Help:      "Total number of catalog lookups by provider",
	}, []string{"provider"})
	providerFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "provider_failures_total",
		Help:      "Total number of failed catalog lookups by provider",
	}, []string{"provider"})
	sessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "genre_fix_sessions_started_total",
		Help:      "Total number of genre-fix sessions started",
	})
	genreSubmissions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mixcrate",
		Name:      "genre_submissions_total",
		Help:      "Total number of accepted genre submissions",
	})
	songsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mixcrate",
		Name:      "songs_total",
		Help:      "Current total number of songs in the library",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent).
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(scansStarted, scansCompleted, scansFailed,
			linksScanned, songsAdded, providerLookups, providerFailures,
			sessionsStarted, genreSubmissions, songsGauge)
	})
}

func IncScanStarted() { scansStarted.Inc() }

func IncScanCompleted() { scansCompleted.Inc() }

func IncScanFailed() { scansFailed.Inc() }

func AddLinksScanned(n int) { linksScanned.Add(float64(n)) }

func AddSongsAdded(n int) { songsAdded.Add(float64(n)) }

func IncProviderLookup(provider string) { providerLookups.WithLabelValues(provider).Inc() }

func IncProviderFailure(provider string) { providerFailures.WithLabelValues(provider).Inc() }

func IncSessionStarted() { sessionsStarted.Inc() }

func IncGenreSubmission() { genreSubmissions.Inc() }

func SetSongs(n int) { songsGauge.Set(float64(n)) }
