package event

import (
	"strings"
	"time"

	"github.com/driftlab/ampmap/internal/lookup"
)

// Type discriminates the five envelope variants.
type Type string

const (
	TypeTrack    Type = "track"
	TypePage     Type = "page"
	TypeScreen   Type = "screen"
	TypeIdentify Type = "identify"
	TypeGroup    Type = "group"
)

// Envelope is the canonical input model for all incoming events. Fixed
// identity fields are typed; everything else (context, properties, traits)
// stays semi-structured and is read through Proxy.
type Envelope struct {
	MessageID    string                    `json:"messageId"`
	Type         Type                      `json:"type"` // "track", "page", "screen", "identify", "group"
	Event        string                    `json:"event,omitempty"`    // track event name
	Name         string                    `json:"name,omitempty"`     // page/screen name
	Category     string                    `json:"category,omitempty"` // page/screen category
	UserID       string                    `json:"userId,omitempty"`
	AnonymousID  string                    `json:"anonymousId,omitempty"`
	GroupID      string                    `json:"groupId,omitempty"`
	Timestamp    time.Time                 `json:"timestamp,omitempty"`
	Properties   map[string]any            `json:"properties,omitempty"`
	Traits       map[string]any            `json:"traits,omitempty"`
	Context      map[string]any            `json:"context,omitempty"`
	Integrations map[string]map[string]any `json:"integrations,omitempty"` // destination options keyed by destination name
	ReceivedAt   time.Time                 `json:"-"`
}

// Proxy resolves a dotted path against the envelope, e.g. "context.device.id".
// The first segment selects one of the free-form sections; the rest is
// resolved with case-insensitive matching at every level. A missing section
// or segment yields (nil, false).
func (e *Envelope) Proxy(path string) (any, bool) {
	root, rest, _ := strings.Cut(path, ".")
	var m map[string]any
	switch strings.ToLower(root) {
	case "context":
		m = e.Context
	case "properties":
		m = e.Properties
	case "traits":
		m = e.Traits
	default:
		return nil, false
	}
	if rest == "" {
		if m == nil {
			return nil, false
		}
		return m, true
	}
	return lookup.Get(m, rest)
}

// ProxyString is Proxy with string coercion; absent or non-string values
// come back as "".
func (e *Envelope) ProxyString(path string) string {
	return lookup.String(e.Proxy(path))
}

// Options returns the destination-specific options block for the named
// destination, matching the name case-insensitively. Absent blocks come
// back as nil, which every lookup treats as empty.
func (e *Envelope) Options(destination string) map[string]any {
	if opts, ok := e.Integrations[destination]; ok {
		return opts
	}
	for name, opts := range e.Integrations {
		if strings.EqualFold(name, destination) {
			return opts
		}
	}
	return nil
}
