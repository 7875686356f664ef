package config

import "sort"

// Recognized targets for a query-param mapping.
const (
	TargetUserProperties  = "user_properties"
	TargetEventProperties = "event_properties"
)

// Config is the top-level YAML structure.
type Config struct {
	Version  string     `yaml:"version"`
	Server   ServerConf `yaml:"server"`
	Settings Settings   `yaml:"settings"`
}

// ServerConf holds tunable host settings.
type ServerConf struct {
	MapWorkers   int `yaml:"map_workers"`
	QueueDepth   int `yaml:"queue_depth"`
	MapTimeoutMs int `yaml:"map_timeout_ms"`
	MaxBatchSize int `yaml:"max_batch_size"`
}

// Settings is the destination configuration record consumed by the mapping
// core. It is read-only input, supplied per invocation; the JSON tags let
// API callers override the loaded settings inline.
type Settings struct {
	APIKey                 string            `yaml:"api_key" json:"apiKey"`
	TrackAllPages          bool              `yaml:"track_all_pages" json:"trackAllPages"`
	TrackCategorizedPages  bool              `yaml:"track_categorized_pages" json:"trackCategorizedPages"`
	TrackNamedPages        bool              `yaml:"track_named_pages" json:"trackNamedPages"`
	TrackRevenuePerProduct bool              `yaml:"track_revenue_per_product" json:"trackRevenuePerProduct"`
	MapQueryParams         map[string]string `yaml:"map_query_params" json:"mapQueryParams"`
}

// QueryParamAlias returns the property name the page query string should be
// aliased under, if query-param mapping is configured. Only one mapping is
// supported (Validate enforces this); should several slip through, the
// lexicographically first property wins so behavior stays deterministic.
func (s *Settings) QueryParamAlias() (string, bool) {
	if len(s.MapQueryParams) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(s.MapQueryParams))
	for k := range s.MapQueryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], true
}
