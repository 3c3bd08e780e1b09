// ABOUTME: go-metrics backed implementation of the Metrics interface
// ABOUTME: Keeps a timer and failure meter per upstream source plus named counters

package metrics

import (
	"io"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Registry records source timings into a go-metrics registry
type Registry struct {
	registry gometrics.Registry
}

// NewRegistry creates a registry isolated from go-metrics' DefaultRegistry
func NewRegistry() *Registry {
	return &Registry{registry: gometrics.NewRegistry()}
}

// RecordSource updates "source.<name>.latency" and, on failure,
// "source.<name>.failures"
func (r *Registry) RecordSource(source string, duration time.Duration, err error) {
	gometrics.GetOrRegisterTimer("source."+source+".latency", r.registry).Update(duration)
	if err != nil {
		gometrics.GetOrRegisterMeter("source."+source+".failures", r.registry).Mark(1)
	}
}

// Inc increments a named counter
func (r *Registry) Inc(name string) {
	gometrics.GetOrRegisterCounter(name, r.registry).Inc(1)
}

// WriteJSON writes a snapshot of every metric as JSON
func (r *Registry) WriteJSON(w io.Writer) {
	gometrics.WriteJSONOnce(r.registry, w)
}

// Snapshot returns failure counts and call counts per source, keyed by metric name
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	r.registry.Each(func(name string, m interface{}) {
		switch v := m.(type) {
		case gometrics.Timer:
			out[name] = v.Count()
		case gometrics.Meter:
			out[name] = v.Count()
		case gometrics.Counter:
			out[name] = v.Count()
		}
	})
	return out
}

// Noop discards all measurements
type Noop struct{}

// RecordSource does nothing
func (Noop) RecordSource(string, time.Duration, error) {}

// Inc does nothing
func (Noop) Inc(string) {}
