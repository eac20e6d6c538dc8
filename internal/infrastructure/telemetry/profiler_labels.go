package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelController = "controller"
	ProfilingLabelOperation  = "operation"
)

// MaxLabelValueLength bounds label values kept on profiles
const MaxLabelValueLength = 128

// highCardinalityLabels are dropped so profiles stay aggregatable
var highCardinalityLabels = map[string]bool{
	"request_id":     true,
	"trace_id":       true,
	"span_id":        true,
	"sale_id":        true,
	"transaction_id": true,
}

// WithProfilingLabels runs fn with pprof labels so CPU samples can be sliced
// by route or operation in Pyroscope
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels labels a request by its route template and method
func HTTPRequestLabels(route, method string) map[string]string {
	return map[string]string{
		ProfilingLabelRoute:  route,
		ProfilingLabelMethod: method,
	}
}

// sanitizeLabels returns sorted key/value pairs with empty and high
// cardinality labels removed and long values truncated
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k, v := range labels {
		k = strings.TrimSpace(k)
		if k == "" || v == "" || highCardinalityLabels[strings.ToLower(k)] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		v := labels[k]
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		pairs = append(pairs, k, v)
	}
	return pairs
}
