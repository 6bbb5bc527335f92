package pid

import "regexp"

// doiPattern covers the DOI grammar: "10." plus a 4-9 digit registrant code,
// a slash, and a permissive suffix. Real-world suffixes carry nested slashes,
// parentheses, colons, and URL-encoded ampersands, so the character class is
// deliberately loose.
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/[A-Za-z0-9._\-():;/%]+$`)

// doiResolverPrefixes are the resolver wrappers stripped before matching.
var doiResolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
}

func matchDOI(s string) (string, bool) {
	rest := s
	stripped := false
	for _, prefix := range doiResolverPrefixes {
		if r, ok := stripPrefixFold(rest, prefix); ok {
			rest = r
			stripped = true
			break
		}
	}
	if !stripped {
		rest, _ = stripPrefixFold(rest, "doi:")
	}
	if doiPattern.MatchString(rest) {
		return rest, true
	}
	return "", false
}
