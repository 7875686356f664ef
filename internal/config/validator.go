package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for:
//   - A usable destination settings block (api_key present)
//   - At most one map_query_params entry (the destination accepts a single
//     alias)
//   - Recognized query-param targets (empty defaults to user_properties)
func Validate(cfg *Config) error {
	var errs []string
	if cfg.Version == "" {
		errs = append(errs, "version is required")
	}
	if cfg.Settings.APIKey == "" {
		errs = append(errs, "settings: api_key is required")
	}
	if err := ValidateSettings(&cfg.Settings); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ValidateSettings checks a destination settings record on its own. API
// callers supplying inline settings go through this too; an api_key is not
// required there since the host never talks to the vendor.
func ValidateSettings(s *Settings) error {
	var errs []string
	if n := len(s.MapQueryParams); n > 1 {
		errs = append(errs, fmt.Sprintf("map_query_params: at most one mapping is supported, got %d", n))
	}
	for prop, target := range s.MapQueryParams {
		switch target {
		case "", TargetUserProperties, TargetEventProperties:
		default:
			errs = append(errs, fmt.Sprintf("map_query_params[%s]: target must be %q or %q, got %q",
				prop, TargetUserProperties, TargetEventProperties, target))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("settings: %s", strings.Join(errs, "; "))
	}
	return nil
}
