package mapper

import (
	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
)

// Page maps a page call. The gate runs before any assembly: when none of
// the page-tracking settings admit the event, no payload is built and the
// call is a no-op, not an error.
func Page(ev *event.Envelope, s *config.Settings) (Payload, bool) {
	if !shouldTrackPage(ev, s) {
		return nil, false
	}
	p := common(ev, s)
	p["event_type"] = viewedEvent(ev, "Page")
	merge(p, "event_properties", sanitizeProperties(ev.Properties, false))
	return prune(p), true
}

// Screen maps a screen call; the gating policy is shared with Page.
func Screen(ev *event.Envelope, s *config.Settings) (Payload, bool) {
	if !shouldTrackPage(ev, s) {
		return nil, false
	}
	p := common(ev, s)
	p["event_type"] = viewedEvent(ev, "Screen")
	merge(p, "event_properties", sanitizeProperties(ev.Properties, false))
	return prune(p), true
}

func shouldTrackPage(ev *event.Envelope, s *config.Settings) bool {
	if s.TrackAllPages {
		return true
	}
	if s.TrackCategorizedPages && ev.Category != "" {
		return true
	}
	return s.TrackNamedPages && ev.Name != ""
}

// viewedEvent builds the event label from the call's qualified name:
// "Viewed <category> <name> Page" when both are present, "Viewed <name>
// Page" with a name alone, and the generic "Loaded a Page" otherwise.
func viewedEvent(ev *event.Envelope, kind string) string {
	name := ev.Name
	if name != "" && ev.Category != "" {
		name = ev.Category + " " + name
	}
	if name == "" {
		return "Loaded a " + kind
	}
	return "Viewed " + name + " " + kind
}
