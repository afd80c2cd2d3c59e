package services

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

const maxSlugLen = 80

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	out := strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-"), "-")
	if len(out) > maxSlugLen {
		out = strings.TrimRight(out[:maxSlugLen], "-")
	}
	return out
}

func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
