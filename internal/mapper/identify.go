package mapper

import (
	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/lookup"
)

// Identify maps an identify call. Identify requests carry no event concept,
// so the event-scoped option fields are dropped from the payload, and the
// destination's paying / start_version options are added.
func Identify(ev *event.Envelope, s *config.Settings) (Payload, bool) {
	p := common(ev, s)
	delete(p, "amplitude_event_type")
	delete(p, "session_id")
	delete(p, "event_id")

	opts := ev.Options(OptionsKey)
	if v, ok := lookup.Field(opts, "paying"); ok {
		p["paying"] = v
	}
	if v, ok := lookup.Field(opts, "start_version"); ok {
		p["start_version"] = v
	}
	return prune(p), true
}
