// Package metrics exports recorded calls as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/scribe"
)

// Unnamed is the object label used for entities wrapped without a name.
const Unnamed = "unnamed"

// Collector turns completed calls into metrics. Its Observe method is a
// scribe.LogFunc.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Labels: object (the configured object name, or Unnamed) and method.
type Collector struct {
	calls       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	historySize *prometheus.GaugeVec
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "method_calls_total",
			Help:      "Total number of completed method calls",
		}, []string{"object", "method"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "method_call_duration_seconds",
			Help:      "Duration of completed method calls",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}, []string{"object", "method"}),
		historySize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "object_history_size",
			Help:      "Current number of records in an object's call history",
		}, []string{"object"}),
	}
}

// Observe records one completed call.
func (c *Collector) Observe(objectName string, call *history.MethodCall, _ []*history.FunctionCall, objectHistory []*history.MethodCall) {
	if objectName == "" {
		objectName = Unnamed
	}
	c.calls.WithLabelValues(objectName, call.Name).Inc()
	c.duration.WithLabelValues(objectName, call.Name).Observe(call.Call.Time.Seconds())
	c.historySize.WithLabelValues(objectName).Set(float64(len(objectHistory)))
}

// LogFunc returns Observe as a scribe.LogFunc.
func (c *Collector) LogFunc() scribe.LogFunc {
	return c.Observe
}

// WriteSummary writes one line per series gathered from g: the value of
// counters and gauges, the sample count and sum of histograms.
func WriteSummary(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if pairs := m.GetLabel(); len(pairs) > 0 {
				labels := make([]string, 0, len(pairs))
				for _, l := range pairs {
					labels = append(labels, l.GetName()+"="+strconv.Quote(l.GetValue()))
				}
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				_, err = fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				_, err = fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				_, err = fmt.Fprintf(w, "%s count=%d sum=%gs\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
