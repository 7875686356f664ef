package mapper

import (
	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
)

// Group maps a group call. It bypasses the common assembly entirely: the
// destination only understands a group id, reflected under a reserved label
// in both groups and user_properties. No group id, nothing to send.
func Group(ev *event.Envelope, _ *config.Settings) (Payload, bool) {
	if ev.GroupID == "" {
		return nil, false
	}
	p := Payload{
		"user_id":         ev.UserID,
		"device_id":       deviceID(ev),
		"groups":          map[string]any{GroupLabel: ev.GroupID},
		"user_properties": map[string]any{GroupLabel: ev.GroupID},
	}
	if !ev.Timestamp.IsZero() {
		p["time"] = ev.Timestamp.UnixMilli()
	}
	return prune(p), true
}
