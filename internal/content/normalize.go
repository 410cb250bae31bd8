// Package content holds the pure text transforms applied to post bodies:
// markdown image repair, image URL extraction, slugs and HTML rendering.
package content

import (
	"regexp"
	"strings"
)

// DefaultImageAlt is the alt text given to bare image URLs wrapped into
// markdown image syntax.
const DefaultImageAlt = "文章圖片"

var (
	// A quote left at the start of a line right before "![alt](", usually a
	// paste artifact. Group 2 is the image opener that must survive.
	strayQuoteRe = regexp.MustCompile(`(^|\n)\s*['’]\s*(!\[[^\]]*\]\s*\n?\s*\()`)

	// "![alt]" separated from "(url)" by line breaks.
	splitImageNewlineRe = regexp.MustCompile(`(!\[[^\]]*\])\s*\n+\s*\(((?:https?://|/)[^\s)]+)\)`)

	// "![alt]" separated from "(url)" by spaces.
	splitImageSpaceRe = regexp.MustCompile(`(!\[[^\]]*\])\s+\(((?:https?://|/)[^\s)]+)\)`)

	imageURLLineRe = regexp.MustCompile(`(?i)^(?:https?://\S+|/\S+)\.(?:png|jpe?g|webp|gif|avif|svg)(?:\?\S*)?$`)

	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
)

// Normalize repairs common authoring mistakes in markdown image syntax and
// turns lines holding nothing but an image URL into image markdown.
// It is idempotent.
func Normalize(content string) string {
	repaired := repairImageSyntax(strings.ReplaceAll(content, "\r\n", "\n"))

	lines := strings.Split(repaired, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "![") {
			continue
		}
		if imageURLLineRe.MatchString(trimmed) {
			lines[i] = "![" + DefaultImageAlt + "](" + trimmed + ")"
		}
	}

	// Wrapping can put a new image opener right after a stray quote line.
	return strings.TrimSpace(repairImageSyntax(strings.Join(lines, "\n")))
}

func repairImageSyntax(s string) string {
	s = strayQuoteRe.ReplaceAllString(s, "${1}${2}")
	s = splitImageNewlineRe.ReplaceAllString(s, "${1}(${2})")
	return splitImageSpaceRe.ReplaceAllString(s, "${1}(${2})")
}

// ExtractImageURLs returns the image URLs referenced by the normalized
// content, deduplicated in first-seen order.
func ExtractImageURLs(content string) []string {
	matches := markdownImageRe.FindAllStringSubmatch(Normalize(content), -1)

	urls := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		url := m[1]
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}
	return urls
}

// PreviewImage picks the image shown for a post in listings: the cover
// image when set, else the first image in the body, else "".
func PreviewImage(content, coverImage string) string {
	if cover := strings.TrimSpace(coverImage); cover != "" {
		return cover
	}

	urls := ExtractImageURLs(content)
	if len(urls) == 0 {
		return ""
	}
	return strings.TrimSpace(urls[0])
}

// HasUnfinishedImages reports whether the text still points at browser
// object URLs (blob:...), which never resolve outside the editor tab.
func HasUnfinishedImages(texts ...string) bool {
	for _, text := range texts {
		if strings.Contains(text, "blob:") {
			return true
		}
	}
	return false
}
