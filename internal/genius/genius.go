// Package genius builds best-effort lyrics links on genius.com. No network
// call is made; a guessed URL may 404 on the target site.
package genius

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://genius.com/"

// slugify converts text to a Genius-style slug fragment: lowercase, "&"
// becomes "and", everything but letters/digits/spaces is stripped, and the
// remaining words are joined with hyphens.
func slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.ReplaceAll(text, "&", "and")

	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// BuildLyricsURL composes a lyrics URL for an artist + track pair, or ""
// when either input (or its slug) is empty.
// Example: "Taylor Swift" + "Lover" -> https://genius.com/taylor-swift-lover-lyrics
func BuildLyricsURL(artistName, trackName string) string {
	if strings.TrimSpace(artistName) == "" || strings.TrimSpace(trackName) == "" {
		return ""
	}
	artistSlug := slugify(artistName)
	trackSlug := slugify(trackName)
	if artistSlug == "" || trackSlug == "" {
		return ""
	}
	slug := fmt.Sprintf("%s-%s-lyrics", artistSlug, trackSlug)
	return baseURL + url.PathEscape(slug)
}
