package pid

import (
	"regexp"
	"strings"
)

// handlePattern is the most permissive of the specific schemes: a purely
// numeric prefix, a slash, then an arbitrary suffix. It is checked after DOI,
// ARK, CSTR, and old-style arXiv so it cannot shadow them.
var handlePattern = regexp.MustCompile(`^\d+/\S+$`)

func matchHandle(s string) (string, bool) {
	if handlePattern.MatchString(s) {
		return s, true
	}
	u, ok := parseHTTPURL(s)
	if !ok || !hostMatches(u.Host, "hdl.handle.net") {
		return "", false
	}
	candidate := strings.TrimPrefix(u.Path, "/")
	if handlePattern.MatchString(candidate) {
		return candidate, true
	}
	return "", false
}
