package mapper

import "github.com/driftlab/ampmap/internal/event"

// deviceID resolves a stable device identifier: the context device id,
// falling back to the anonymous id.
//
// analytics-android 1.4.4 generated a fresh device id per launch, so for
// that exact version the id is synthesized from fields that are stable
// across launches. This is a literal version match, not a range; later
// versions were fixed.
func deviceID(ev *event.Envelope) string {
	name := ev.ProxyString("context.library.name")
	version := ev.ProxyString("context.library.version")
	if name == androidLibrary && version == buggyAndroidVersion {
		return ev.UserID + ":" + ev.ProxyString("context.device.model") + ":" + ev.ProxyString("context.device.id")
	}
	if id := ev.ProxyString("context.device.id"); id != "" {
		return id
	}
	return ev.AnonymousID
}
