package hook

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength bounds slugs so they stay usable as URL segments and storage keys
const MaxSlugLength = 64

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// NormalizeSlug trims and lower-cases s and checks it against the slug alphabet
func NormalizeSlug(s string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return slug, nil
}

// ValidateSlug reports whether slug is already in normalized form
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: slug cannot be empty", ErrInvalidSlug)
	}
	if len(slug) > MaxSlugLength {
		return fmt.Errorf("%w: slug longer than %d characters", ErrInvalidSlug, MaxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q may only contain [a-z0-9_-] and must start with a letter or digit", ErrInvalidSlug, slug)
	}
	return nil
}
