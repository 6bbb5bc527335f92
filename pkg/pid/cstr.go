package pid

import (
	"regexp"
	"strings"
)

// cstrPattern covers the CSTR grammar RA_CODE.TYPE.NAMESPACE.LOCAL_ID: a
// 5-digit registration agency code, a 2-digit resource type, then at least
// two further dot-separated tokens. Namespace and local ID are permissive and
// may carry additional slash-separated segments for deep paths.
var cstrPattern = regexp.MustCompile(`^\d{5}\.\d{2}\.[A-Za-z0-9_\-]+(\.[A-Za-z0-9_\-]+)+(/[A-Za-z0-9._\-]+)*$`)

// cstrResolverHosts are identifier resolvers whose path embeds a cstr: token.
var cstrResolverHosts = []string{
	"identifiers.org",
	"bioregistry.io",
}

func matchCSTR(s string) (string, bool) {
	if id, ok := cstrBare(s); ok {
		return id, true
	}
	u, ok := parseHTTPURL(s)
	if !ok {
		return "", false
	}
	hosted := false
	for _, host := range cstrResolverHosts {
		if hostMatches(u.Host, host) {
			hosted = true
			break
		}
	}
	if !hosted {
		return "", false
	}
	path := u.Path
	idx := strings.Index(strings.ToLower(path), "cstr:")
	if idx < 0 {
		return "", false
	}
	return cstrBare(path[idx:])
}

func cstrBare(s string) (string, bool) {
	id, _ := stripPrefixFold(s, "cstr:")
	if cstrPattern.MatchString(id) {
		return id, true
	}
	return "", false
}
