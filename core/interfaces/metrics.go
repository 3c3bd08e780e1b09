// ABOUTME: Metrics interface for recording upstream source timings and failures
// ABOUTME: Backed by a go-metrics registry in production and a no-op in tests

package interfaces

import "time"

// Metrics records operational measurements
type Metrics interface {
	// RecordSource records the duration of one upstream call and whether it failed
	RecordSource(source string, duration time.Duration, err error)

	// Inc increments a named counter
	Inc(name string)
}
