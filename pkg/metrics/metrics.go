// Package metrics holds shared metric settings and registration helpers.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric the application exports.
const Namespace = "smartsite"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Register registers c with reg and returns it. When an equal collector is
// already registered the existing one is returned, so constructing a component
// twice against the same registry keeps a single series set. A nil reg leaves
// c unregistered.
func Register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if reg == nil {
		return c, nil
	}

	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		var zero C

		return zero, fmt.Errorf("could not register collector: %w", err)
	}

	return c, nil
}
