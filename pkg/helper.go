package pkg

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonSlugRe = regexp.MustCompile("[^a-z0-9]+")
)

// ValidateEmail is a UI-level shape check (one @, a dot in the domain, no
// whitespace). It is not an RFC 5322 validator.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// GetInitials returns the upper-cased first letters of the first two words of
// title. Empty tokens produced by repeated spaces are skipped, so "A  B" gives "AB".
func GetInitials(title string) string {
	if title == "" {
		return ""
	}

	var sb strings.Builder
	n := 0
	for _, word := range strings.Split(title, " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(r)
		n++
		if n == 2 {
			break
		}
	}
	return strings.ToUpper(sb.String())
}

// GenerateSlug lower-cases title and collapses everything outside [a-z0-9]
// into single dashes. Used for export file names.
func GenerateSlug(title string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "session"
	}
	return slug
}
