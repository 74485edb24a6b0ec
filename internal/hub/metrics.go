//nolint:gochecknoglobals
package hub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionsMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "opshub",
		Name:      "connections",
		Help:      "The number of connected sessions",
	})

	eventsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opshub",
		Name:      "events_processed",
		Help:      "The total number of hub events processed",
	}, []string{"kind"})

	radioMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opshub",
		Name:      "radio_relayed",
		Help:      "The total number of radio transmissions relayed",
	}, []string{"kind"})

	droppedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "opshub",
		Name:      "sends_dropped",
		Help:      "The total number of messages dropped on slow or dead sessions",
	})

	logFailMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "opshub",
		Name:      "radio_log_failures",
		Help:      "The total number of failed radio log writes",
	})
)
