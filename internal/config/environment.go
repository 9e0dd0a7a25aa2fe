package config

import "strings"

// FirstNonEmpty returns the first argument that is not blank, unmodified.
// Command-line flags use it to layer flag > env > config.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
