package pid

import (
	"regexp"
	"strings"
)

var (
	// New-style identifier: YYMM.NNNNN with an optional version suffix.
	arxivNewPattern = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	// Old-style identifier: subject class, slash, seven digits. Subject
	// classes are lowercase with hyphens (hep-th, astro-ph) and may carry a
	// dotted subclass (math.GT).
	arxivOldPattern = regexp.MustCompile(`^[a-z-]+(\.[A-Za-z-]+)?/\d{7}(v\d+)?$`)
)

// arxivPathVerbs are the arxiv.org path segments that precede an identifier.
var arxivPathVerbs = map[string]bool{
	"abs":  true,
	"pdf":  true,
	"html": true,
	"src":  true,
}

func matchArXiv(s string) (string, bool) {
	if id, ok := arxivBare(s); ok {
		return id, true
	}
	u, ok := parseHTTPURL(s)
	if !ok || !hostMatches(u.Host, "arxiv.org") {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || !arxivPathVerbs[segments[0]] {
		return "", false
	}
	candidate := strings.Join(segments[1:], "/")
	candidate = strings.TrimSuffix(candidate, ".pdf")
	return arxivBare(candidate)
}

func arxivBare(s string) (string, bool) {
	id, _ := stripPrefixFold(s, "arxiv:")
	if arxivNewPattern.MatchString(id) || arxivOldPattern.MatchString(id) {
		return id, true
	}
	return "", false
}
