package mapper

import "strings"

// reservedProperties collide with top-level payload fields and are always
// stripped from event properties.
var reservedProperties = []string{"country", "language", "event_id", "amplitude_event_type"}

// revenueProperties are stripped only when the event actually carries
// revenue; non-revenue events may use these names as ordinary custom
// properties.
var revenueProperties = []string{"price", "quantity", "productId", "revenueType"}

// sanitizeProperties returns a copy of props without the destination's
// reserved keys. Matching is case-insensitive, like every other key lookup
// in this package. The input map is never touched.
func sanitizeProperties(props map[string]any, hasRevenue bool) map[string]any {
	reserved := reservedProperties
	if hasRevenue {
		reserved = append(reserved[:len(reserved):len(reserved)], revenueProperties...)
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if !containsFold(reserved, k) {
			out[k] = v
		}
	}
	return out
}

// sanitizeTraits returns a copy of traits without the address block; city,
// region and country are extracted explicitly instead of passed through raw.
func sanitizeTraits(traits map[string]any) map[string]any {
	out := make(map[string]any, len(traits))
	for k, v := range traits {
		if !strings.EqualFold(k, "address") {
			out[k] = v
		}
	}
	return out
}

func containsFold(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
