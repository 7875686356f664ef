package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/mapper"
	"github.com/driftlab/ampmap/internal/metrics"
)

// MapResult is the outcome of mapping a single event.
type MapResult struct {
	EventID    string           `json:"event_id"`
	EventType  string           `json:"event_type"`
	Filtered   bool             `json:"filtered"`
	DurationUs int64            `json:"duration_us"`
	Payloads   []mapper.Payload `json:"payloads,omitempty"`
}

// envelopeJob pairs an envelope with an optional per-request settings
// override; nil settings means "use the currently loaded ones".
type envelopeJob struct {
	ev       *event.Envelope
	settings *config.Settings
}

// Engine runs envelopes through the mapping core on a bounded worker pool.
// The mapper itself is pure, so the engine owns everything stateful:
// concurrency, the live settings pointer and metrics.
type Engine struct {
	settings atomic.Pointer[config.Settings]
	pool     *workerPool
	conf     *config.ServerConf
}

// New creates an Engine using conf and starts the worker pool.
func New(ctx context.Context, s *config.Settings, conf config.ServerConf) *Engine {
	e := &Engine{conf: &conf}
	e.settings.Store(s)
	e.pool = newWorkerPool(ctx, conf.MapWorkers, conf.QueueDepth, func(w *mapWork) {
		res := e.mapEvent(w.job)
		if w.resultC != nil {
			w.resultC <- res
		}
	})
	return e
}

// SwapSettings atomically replaces the destination settings (used on
// hot-reload). In-flight events keep the settings they started with.
func (e *Engine) SwapSettings(s *config.Settings) {
	e.settings.Store(s)
}

// Settings returns the currently loaded destination settings.
func (e *Engine) Settings() *config.Settings {
	return e.settings.Load()
}

// MapSync maps an event synchronously and returns the result. A non-nil
// override takes precedence over the loaded settings for this call only.
func (e *Engine) MapSync(ctx context.Context, ev *event.Envelope, override *config.Settings) (*MapResult, error) {
	resultC := make(chan *MapResult, 1)
	w := &mapWork{job: &envelopeJob{ev: ev, settings: override}, resultC: resultC}

	timeout := time.Duration(e.conf.MapTimeoutMs) * time.Millisecond
	if !e.pool.Submit(w) {
		metrics.EventsDropped.Inc()
		return nil, fmt.Errorf("mapping queue full (capacity %d)", e.conf.QueueDepth)
	}
	metrics.EventsEnqueued.Inc()

	select {
	case res := <-resultC:
		return res, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("mapping timeout after %v", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// MapAsync enqueues an event for background mapping. Returns false if the
// queue is full.
func (e *Engine) MapAsync(ev *event.Envelope, override *config.Settings) bool {
	w := &mapWork{job: &envelopeJob{ev: ev, settings: override}}
	if !e.pool.Submit(w) {
		metrics.EventsDropped.Inc()
		return false
	}
	metrics.EventsEnqueued.Inc()
	return true
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) mapEvent(job *envelopeJob) *MapResult {
	start := time.Now()
	s := job.settings
	if s == nil {
		s = e.settings.Load()
	}

	payloads := mapper.Map(job.ev, s)

	res := &MapResult{
		EventID:    job.ev.MessageID,
		EventType:  string(job.ev.Type),
		Filtered:   len(payloads) == 0,
		Payloads:   payloads,
		DurationUs: time.Since(start).Microseconds(),
	}

	metrics.EventsMapped.WithLabelValues(res.EventType).Inc()
	if res.Filtered {
		metrics.EventsFiltered.WithLabelValues(res.EventType).Inc()
	} else {
		metrics.PayloadsProduced.Add(float64(len(payloads)))
	}
	metrics.MappingDuration.Observe(float64(res.DurationUs))

	return res
}

// Shutdown drains the pool gracefully.
func (e *Engine) Shutdown() {
	e.pool.Drain()
}
