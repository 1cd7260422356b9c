package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumeric characters into a hyphen.
// Example: "UPS Ground - Commercial" -> "ups-ground-commercial"
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// ExportFileName builds a download file name from its non-empty parts.
// ext is given without the leading dot.
func ExportFileName(ext string, parts ...string) string {
	var slugs []string
	for _, p := range parts {
		if slug := Slugify(p); slug != "" {
			slugs = append(slugs, slug)
		}
	}
	if len(slugs) == 0 {
		slugs = []string{"export"}
	}
	return strings.Join(slugs, "-") + "." + strings.TrimPrefix(ext, ".")
}
