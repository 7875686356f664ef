package mapper

import (
	"regexp"

	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/lookup"
)

var orderCompletedRe = regexp.MustCompile(`(?i)^[ _]?completed[ _]?order[ _]?$|^[ _]?order[ _]?completed[ _]?$`)

// trackRevenue extracts the revenue amount from a track call. Order
// completion events missing an explicit revenue fall back to the order
// total. Zero counts as no revenue.
func trackRevenue(ev *event.Envelope) (float64, bool) {
	if rev, ok := lookup.Float(ev.Proxy("properties.revenue")); ok && rev != 0 {
		return rev, true
	}
	if orderCompletedRe.MatchString(ev.Event) {
		if total, ok := lookup.Float(ev.Proxy("properties.total")); ok && total != 0 {
			return total, true
		}
	}
	return 0, false
}

// productPayloads fans a track payload out into one extra payload per
// purchased product. Each copy keeps every field of the primary payload,
// overriding price, quantity, revenueType and productId with the product's
// own values where present, and takes a fixed purchase event_type.
func productPayloads(primary Payload, ev *event.Envelope) []Payload {
	products, ok := lookup.Slice(ev.Proxy("properties.products"))
	if !ok {
		return nil
	}
	out := make([]Payload, 0, len(products))
	for _, raw := range products {
		product, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		p := primary.clone()
		p["event_type"] = ProductPurchasedEvent
		for _, key := range []string{"price", "quantity", "revenueType", "productId"} {
			if v, ok := lookup.Field(product, key); ok {
				p[key] = v
			}
		}
		out = append(out, prune(p))
	}
	return out
}
