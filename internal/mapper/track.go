package mapper

import (
	"github.com/driftlab/ampmap/internal/config"
	"github.com/driftlab/ampmap/internal/event"
	"github.com/driftlab/ampmap/internal/lookup"
)

// Track maps a track call. The result always holds at least one payload;
// per-product payloads follow the primary when fan-out is enabled.
func Track(ev *event.Envelope, s *config.Settings) []Payload {
	p := common(ev, s)

	revenue, hasRevenue := trackRevenue(ev)
	if hasRevenue {
		p["revenue"] = revenue
		// Price and quantity are set together or not at all.
		price, pok := lookup.Float(ev.Proxy("properties.price"))
		quantity, qok := lookup.Float(ev.Proxy("properties.quantity"))
		if pok && qok {
			p["price"] = price
			p["quantity"] = quantity
		}
		if v, ok := ev.Proxy("properties.revenueType"); ok {
			p["revenueType"] = v
		}
		if v, ok := ev.Proxy("properties.productId"); ok {
			p["productId"] = v
		}
	}

	p["event_type"] = ev.Event
	merge(p, "event_properties", sanitizeProperties(ev.Properties, hasRevenue))
	p = prune(p)

	payloads := []Payload{p}
	if s.TrackRevenuePerProduct {
		payloads = append(payloads, productPayloads(p, ev)...)
	}
	return payloads
}
