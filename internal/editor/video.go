package editor

import (
	"net/url"
	"strings"
)

// NormalizeVideoURL rewrites a YouTube watch or share URL into the embed
// form an iframe can load. Anything unrecognized passes through untouched.
func NormalizeVideoURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return trimmed
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			if id := parsed.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
		if strings.HasPrefix(parsed.Path, "/shorts/") {
			if id := strings.TrimPrefix(parsed.Path, "/shorts/"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
	case "youtu.be":
		if id := strings.Trim(parsed.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case "vimeo.com":
		if id := strings.Trim(parsed.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return trimmed
}
