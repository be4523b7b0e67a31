package httpclient

import (
	"strings"
)

// ParseLinks parses an RFC 8288 Link header into a rel → URL map.
//
//	<https://api.github.com/repositories/1/actions/runs?page=2>; rel="next", <...>; rel="last"
//
// A link whose rel lists several relation types is stored under each.
// Malformed entries are skipped.
func ParseLinks(header string) map[string]string {
	links := make(map[string]string)
	for _, entry := range splitLinkEntries(header) {
		entry = strings.TrimSpace(entry)
		if !strings.HasPrefix(entry, "<") {
			continue
		}
		end := strings.IndexByte(entry, '>')
		if end < 0 {
			continue
		}
		target := entry[1:end]
		for _, param := range strings.Split(entry[end+1:], ";") {
			key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
				continue
			}
			value = strings.Trim(strings.TrimSpace(value), `"`)
			for _, rel := range strings.Fields(value) {
				links[strings.ToLower(rel)] = target
			}
		}
	}
	return links
}

// splitLinkEntries splits on commas outside of <...> targets.
func splitLinkEntries(header string) []string {
	var entries []string
	depth, start := 0, 0
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				entries = append(entries, header[start:i])
				start = i + 1
			}
		}
	}
	if start < len(header) {
		entries = append(entries, header[start:])
	}
	return entries
}
