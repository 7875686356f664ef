package mapper

import (
	"strings"

	"golang.org/x/text/language"
)

// parseLocale splits a locale string like "en-US" (or "en_US") into its
// language and country codes. An unparseable locale is treated as no locale
// at all. The country is only reported when the locale spells it out;
// bare languages like "en" parse with an inferred region that must not leak.
func parseLocale(locale string) (lang, country string, ok bool) {
	if locale == "" {
		return "", "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", "", false
	}
	lang = base.String()
	if region, conf := tag.Region(); conf == language.Exact && region.IsCountry() {
		country = region.String()
	}
	return lang, country, true
}
