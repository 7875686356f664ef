package mapper

import (
	"strings"

	"github.com/mileusna/useragent"
)

// platformFromLibrary maps known client library names to platform labels.
// Unknown libraries yield "" so the caller can fall through to device type
// and OS.
func platformFromLibrary(library string) string {
	switch strings.ToLower(library) {
	case webLibrary:
		return "Web"
	case androidLibrary:
		return "Android"
	case iosLibrary:
		return "iOS"
	}
	return ""
}

// canonicalPlatform normalizes recognized platform values to the
// destination's exact casing. Unrecognized values pass through verbatim so
// they stay visible downstream.
func canonicalPlatform(platform string) string {
	switch strings.ToLower(platform) {
	case "web":
		return "Web"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	}
	return platform
}

// applyUserAgent overwrites the browser and OS fields from a parsed
// user-agent string: browser name → os_name, browser major version →
// os_version, OS name → device_model. This mirrors what the destination's
// own web SDK reports.
func applyUserAgent(p Payload, ua string) {
	parsed := useragent.Parse(ua)
	p["os_name"] = parsed.Name
	p["os_version"] = majorVersion(parsed.Version)
	p["device_model"] = parsed.OS
}

func majorVersion(version string) string {
	major, _, _ := strings.Cut(version, ".")
	return major
}
