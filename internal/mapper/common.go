package mapper

import (
	"strings"

	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/lookup"
)

// common builds the payload fields shared by track, page, screen and
// identify calls: identity, device and app context, locale, advertising id
// routing, platform, sanitized user properties, query-param passthrough and
// groups. Type-specific mappers extend the result.
func common(ev *event.Envelope, s *config.Settings) Payload {
	opts := ev.Options(OptionsKey)
	osName := ev.ProxyString("context.os.name")

	p := Payload{
		"user_id":             ev.UserID,
		"device_id":           deviceID(ev),
		"library":             libraryName,
		"app_version":         ev.ProxyString("context.app.version"),
		"os_name":             osName,
		"os_version":          ev.ProxyString("context.os.version"),
		"carrier":             ev.ProxyString("context.network.carrier"),
		"device_model":        ev.ProxyString("context.device.model"),
		"device_brand":        ev.ProxyString("context.device.brand"),
		"device_manufacturer": ev.ProxyString("context.device.manufacturer"),
		"ip":                  ev.ProxyString("context.ip"),
	}
	if !ev.Timestamp.IsZero() {
		p["time"] = ev.Timestamp.UnixMilli()
	}
	if lat, ok := lookup.Float(ev.Proxy("context.location.latitude")); ok {
		p["location_lat"] = lat
	}
	if lng, ok := lookup.Float(ev.Proxy("context.location.longitude")); ok {
		p["location_lng"] = lng
	}
	if v, ok := lookup.Field(opts, "event_type"); ok {
		p["amplitude_event_type"] = v
	}
	if v, ok := lookup.Field(opts, "session_id"); ok {
		p["session_id"] = v
	}
	if v, ok := lookup.Field(opts, "event_id"); ok {
		p["event_id"] = v
	}

	if lang, country, ok := parseLocale(ev.ProxyString("context.locale")); ok {
		p["language"] = lang
		p["country"] = country
	}
	// Explicit location fields win over locale-derived values.
	if c := addressField(ev, "country"); c != "" {
		p["country"] = c
	}
	if c := addressField(ev, "city"); c != "" {
		p["city"] = c
	}
	if r := addressField(ev, "region"); r != "" {
		p["region"] = r
	}

	// Older clients sent idfa, newer ones send advertisingId. Exactly one
	// of idfa/adid may be set, chosen by OS.
	adID := ev.ProxyString("context.device.advertisingId")
	if adID == "" {
		adID = ev.ProxyString("context.device.idfa")
	}
	if adID != "" {
		switch strings.ToLower(osName) {
		case "ios":
			p["idfa"] = adID
		case "android":
			p["adid"] = adID
		}
	}

	lib := ev.ProxyString("context.library.name")
	platform := platformFromLibrary(lib)
	if platform == "" {
		platform = ev.ProxyString("context.device.type")
	}
	if platform == "" {
		platform = strings.ToLower(osName)
	}
	if platform == "" {
		platform = lib
	}
	if platform != "" {
		p["platform"] = canonicalPlatform(platform)
	}

	// The unbundled web client's native os/device context is unreliable;
	// parsing the user-agent matches what amplitude.js itself would report.
	if strings.EqualFold(lib, webLibrary) {
		if ua := ev.ProxyString("context.userAgent"); ua != "" {
			applyUserAgent(p, ua)
		}
	}

	p["user_properties"] = sanitizeTraits(ev.Traits)

	applyQueryParams(p, ev, s)

	if groups, ok := lookup.Map(lookup.Field(opts, "groups")); ok && len(groups) > 0 {
		p["groups"] = groups
		merge(p, "user_properties", groups)
	}

	return prune(p)
}

// addressField reads an explicit location field, preferring traits over
// properties and flat keys over the nested address block.
func addressField(ev *event.Envelope, field string) string {
	for _, path := range []string{
		"traits." + field,
		"traits.address." + field,
		"properties." + field,
		"properties.address." + field,
	} {
		if v := ev.ProxyString(path); v != "" {
			return v
		}
	}
	return ""
}

// applyQueryParams copies the page query string into the payload under the
// configured alias. Identify calls cannot carry event_properties, so the
// value lands in user_properties instead; for every other type the existing
// event_properties object is replaced outright, not merged.
func applyQueryParams(p Payload, ev *event.Envelope, s *config.Settings) {
	property, ok := s.QueryParamAlias()
	if !ok {
		return
	}
	query := ev.ProxyString("context.page.search")
	if query == "" {
		return
	}
	if ev.Type == event.TypeIdentify {
		up, ok := p["user_properties"].(map[string]any)
		if !ok {
			up = map[string]any{}
			p["user_properties"] = up
		}
		up[property] = query
		return
	}
	p["event_properties"] = map[string]any{property: query}
}
