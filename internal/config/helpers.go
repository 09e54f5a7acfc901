package config

import "strings"

// cleanList trims every value and drops the empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))

	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}

	return out
}
