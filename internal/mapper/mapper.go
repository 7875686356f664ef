// Package mapper turns vendor-neutral analytics events into the request
// shape expected by the Amplitude ingestion API. Every function here is a
// pure transform: no I/O, no clocks, no shared state. Missing or malformed
// input degrades to absent fields, never to an error.
package mapper

import (
	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
)

const (
	// OptionsKey selects this destination's block inside an envelope's
	// integration options.
	OptionsKey = "Amplitude"

	// GroupLabel is the reserved synthetic property that group calls write
	// into both groups and user_properties.
	GroupLabel = "[Segment] Group"

	// ProductPurchasedEvent is the event_type assigned to the per-product
	// payloads fanned out from a revenue-bearing track call.
	ProductPurchasedEvent = "Product Purchased"

	libraryName = "segment"

	webLibrary     = "analytics.js"
	androidLibrary = "analytics-android"
	iosLibrary     = "analytics-ios"

	// analytics-android 1.4.4 emitted unstable device ids; see deviceID.
	buggyAndroidVersion = "1.4.4"
)

// Payload is one outgoing request object. Payloads are built fresh per
// invocation, pruned of empty values before return, and never mutated
// afterwards; the caller owns them exclusively.
type Payload map[string]any

// Map routes an envelope to its type-specific mapper. The result is empty
// when the event is filtered out or carries nothing to send; track calls
// may return more than one payload (per-product fan-out).
func Map(ev *event.Envelope, s *config.Settings) []Payload {
	switch ev.Type {
	case event.TypeTrack:
		return Track(ev, s)
	case event.TypePage:
		if p, ok := Page(ev, s); ok {
			return []Payload{p}
		}
	case event.TypeScreen:
		if p, ok := Screen(ev, s); ok {
			return []Payload{p}
		}
	case event.TypeIdentify:
		if p, ok := Identify(ev, s); ok {
			return []Payload{p}
		}
	case event.TypeGroup:
		if p, ok := Group(ev, s); ok {
			return []Payload{p}
		}
	}
	return nil
}

// prune drops entries whose value resolved to nothing: nil, "" or an empty
// object. The destination treats such keys as noise.
func prune(p Payload) Payload {
	for k, v := range p {
		if isEmpty(v) {
			delete(p, k)
		}
	}
	return p
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// clone copies the top level of a payload. Nested objects are shared;
// payloads are never mutated after return, so sharing is safe.
func (p Payload) clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// merge extends the object at p[key] with src, creating it when absent.
// Existing keys lose to src.
func merge(p Payload, key string, src map[string]any) {
	if len(src) == 0 {
		return
	}
	dst, ok := p[key].(map[string]any)
	if !ok {
		p[key] = src
		return
	}
	for k, v := range src {
		dst[k] = v
	}
}
