package content

import (
	"regexp"
	"strings"
)

var (
	slugInvalidRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespaceRe = regexp.MustCompile(`\s+`)
	slugHyphensRe    = regexp.MustCompile(`-+`)
	listSplitRe      = regexp.MustCompile(`\r?\n|,`)
)

// Slugify lower-cases the input, drops everything outside [a-z0-9],
// whitespace and hyphens, then joins words with single hyphens.
// Input without any ASCII letters or digits yields "".
func Slugify(input string) string {
	slug := strings.ToLower(input)
	slug = slugInvalidRe.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugWhitespaceRe.ReplaceAllString(slug, "-")
	slug = slugHyphensRe.ReplaceAllString(slug, "-")
	return slug
}

// ParseTags splits a comma separated tag field.
func ParseTags(input string) []string {
	return compact(strings.Split(input, ","))
}

// SplitList splits a field on newlines or commas, as used for the
// multi-line school entry.
func SplitList(input string) []string {
	return compact(listSplitRe.Split(input, -1))
}

func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
