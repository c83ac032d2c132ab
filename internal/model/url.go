package model

import "strings"

// knownSchemes are the prefixes NormalizeURL leaves untouched.
var knownSchemes = []string{"http://", "https://", "ftp://", "file://", "mailto:"}

// NormalizeURL prepends https:// when raw has no recognized scheme.
// Empty input stays empty. Applying it twice yields the same result.
func NormalizeURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}

	lower := strings.ToLower(url)
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(lower, scheme) {
			return url
		}
	}

	// Protocol-relative URLs keep their host
	url = strings.TrimPrefix(url, "//")
	return "https://" + url
}
