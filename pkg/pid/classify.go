package pid

import (
	"net/url"
	"strings"
)

// Result is the outcome of a single classification. NormalizedValue is the
// input with surrounding whitespace trimmed and any recognized resolver-URL
// wrapper or scheme-label prefix removed. Native casing is preserved.
type Result struct {
	Scheme          Scheme
	NormalizedValue string
}

// matcher reports whether s belongs to a scheme and, if so, returns the
// normalized value. Matchers receive input that is already trimmed.
type matcher func(s string) (normalized string, ok bool)

// matchers is tried in fixed precedence order; the first match wins.
//
// DOI runs first because its suffix grammar is permissive enough to subsume
// arXiv- and bibcode-shaped strings (10.48550/arXiv.2501.13958 is a DOI).
// Handle runs last among the specific schemes because digits/anything would
// otherwise swallow ARK, CSTR, and old-style arXiv identifiers.
var matchers = []struct {
	scheme Scheme
	match  matcher
}{
	{SchemeDOI, matchDOI},
	{SchemeARK, matchARK},
	{SchemeArXiv, matchArXiv},
	{SchemeBibcode, matchBibcode},
	{SchemeCSTR, matchCSTR},
	{SchemeHandle, matchHandle},
	{SchemeURL, matchURL},
}

// Classify maps a raw string to exactly one scheme. It is total: malformed or
// empty input degrades to SchemeUnknown rather than failing, so callers can
// always offer a manual override without special-casing errors.
func Classify(raw string) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{Scheme: SchemeUnknown, NormalizedValue: trimmed}
	}
	for _, m := range matchers {
		if normalized, ok := m.match(trimmed); ok {
			return Result{Scheme: m.scheme, NormalizedValue: normalized}
		}
	}
	return Result{Scheme: SchemeUnknown, NormalizedValue: trimmed}
}

// stripPrefixFold removes prefix from s case-insensitively. The second return
// value reports whether the prefix was present.
func stripPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

// parseHTTPURL parses s as an absolute http(s) URL with a host.
func parseHTTPURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}
	return u, true
}

// hostMatches reports whether host equals candidate or is a subdomain of it,
// ignoring case and a leading www.
func hostMatches(host, candidate string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	return host == candidate || strings.HasSuffix(host, "."+candidate)
}

// matchURL accepts any syntactically valid absolute URL that none of the
// specific-scheme resolver forms claimed. Generic URLs are returned unwrapped.
func matchURL(s string) (string, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return s, true
}
