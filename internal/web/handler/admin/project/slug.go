package project

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSlug is returned when a slug is not lowercase-hyphenated.
var ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and single hyphens")

var (
	slugPattern    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonSlugRunes   = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenCollapse = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a title: lowercased, runs of
// non-alphanumerics become single hyphens, leading and trailing hyphens are
// trimmed. An empty result means the title had no usable characters.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = nonSlugRunes.ReplaceAllString(s, "-")
	s = hyphenCollapse.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// ValidSlug reports whether s is an acceptable project slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
