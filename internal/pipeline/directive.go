package pipeline

import (
	"regexp"
	"strings"
)

// coverDirective matches ((COVER_IMG: description)).
var coverDirective = regexp.MustCompile(`\(\(COVER_IMG:\s*(.*?)\)\)`)

// ExtractCover returns the cover description and the body without cover
// directives. Exactly one non-empty directive is required to use its
// description; with none, several, or an empty one, fallback is returned.
// All cover directives are removed from the body, which is then trimmed.
func ExtractCover(raw, fallback string) (cover, body string) {
	matches := coverDirective.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return fallback, raw
	}

	body = strings.TrimSpace(coverDirective.ReplaceAllString(raw, ""))
	if len(matches) > 1 {
		return fallback, body
	}
	if desc := strings.TrimSpace(matches[0][1]); desc != "" {
		return desc, body
	}
	return fallback, body
}

// ImageDescriptions lists the trimmed, non-empty image directive
// descriptions of body in document order, without duplicates.
func ImageDescriptions(body string) []string {
	matches := imageDirective.FindAllStringSubmatch(body, -1)
	seen := make(map[string]bool, len(matches))
	descs := make([]string, 0, len(matches))
	for _, m := range matches {
		desc := strings.TrimSpace(m[1])
		if desc == "" || seen[desc] {
			continue
		}
		seen[desc] = true
		descs = append(descs, desc)
	}
	return descs
}

// MissingImages lists the descriptions of body that images cannot resolve.
func MissingImages(body string, images map[string]string) []string {
	var missing []string
	for _, desc := range ImageDescriptions(body) {
		if images[desc] == "" {
			missing = append(missing, desc)
		}
	}
	return missing
}
