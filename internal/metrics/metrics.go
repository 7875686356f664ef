package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ampmap_events_enqueued_total",
		Help: "Total number of events placed on the mapping queue.",
	})

	EventsMapped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ampmap_events_mapped_total",
		Help: "Total number of events run through the mapper, labelled by event type.",
	}, []string{"event_type"})

	EventsFiltered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ampmap_events_filtered_total",
		Help: "Total number of events that produced no payload (page/screen gating, missing group id).",
	}, []string{"event_type"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ampmap_events_dropped_total",
		Help: "Total number of events rejected due to a full queue.",
	})

	PayloadsProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ampmap_payloads_produced_total",
		Help: "Total number of destination payloads produced, including per-product fan-out.",
	})

	MappingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ampmap_mapping_duration_us",
		Help:    "Per-event mapping latency in microseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ampmap_queue_utilization_ratio",
		Help: "Current mapping queue utilization (0–1).",
	})
)
