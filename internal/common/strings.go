package common

import "strings"

// UnknownStr is the display name of values outside their enumeration.
const UnknownStr = "unknown"

// FirstNonBlank returns the first argument that is not empty after trimming.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
