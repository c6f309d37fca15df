package common

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Truncate shortens s to max runes, appending an ellipsis when it cut
// anything.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// FormatDuration renders a duration the way the CLI reports elapsed time.
func FormatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case secs < 3600:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	default:
		return fmt.Sprintf("%dh %dm %ds", secs/3600, (secs%3600)/60, secs%60)
	}
}

// SanitizeURL cleans up common copy-paste and feed artifacts around a URL:
// surrounding whitespace, stray trailing punctuation, wrapping brackets.
// Returns "" when what remains is not an absolute http(s) URL.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	trailing := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, ch := range trailing {
		cleaned = strings.TrimSuffix(cleaned, ch)
	}
	leading := []string{"(", "[", "<", "\"", "'"}
	for _, ch := range leading {
		cleaned = strings.TrimPrefix(cleaned, ch)
	}
	cleaned = strings.TrimSpace(cleaned)

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return ""
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ""
	}
	return cleaned
}
