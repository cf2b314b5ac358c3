package util

import "strings"

// HasSuffixAny checks if s ends with any of the given suffixes.
func HasSuffixAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// ExpandPlaceholders replaces {key} markers in a template with their values.
// Unknown markers are left in place.
func ExpandPlaceholders(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
