package pgn

import (
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParseHeaders extracts PGN header tags into a map
func ParseHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

// OpeningLabel builds a display label from the ECO and Opening header tags.
// Chess.com PGNs usually carry the opening name in an ECOUrl tag instead of
// an Opening tag, so that is used as a fallback. Returns "" when the PGN
// carries none of them.
func OpeningLabel(pgn string) string {
	headers := ParseHeaders(pgn)
	eco := headers["ECO"]
	name := headers["Opening"]
	if name == "" {
		name = nameFromECOUrl(headers["ECOUrl"])
	}

	switch {
	case eco != "" && name != "":
		return eco + ": " + name
	case name != "":
		return name
	case eco != "":
		return eco
	default:
		return ""
	}
}

// nameFromECOUrl turns "https://www.chess.com/openings/Sicilian-Defense"
// into "Sicilian Defense".
func nameFromECOUrl(url string) string {
	if url == "" {
		return ""
	}
	const marker = "/openings/"
	idx := strings.LastIndex(url, marker)
	if idx < 0 {
		return ""
	}
	slug := url[idx+len(marker):]
	slug = strings.TrimSuffix(slug, "/")
	return strings.ReplaceAll(slug, "-", " ")
}
