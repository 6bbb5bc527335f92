package pid

import (
	"regexp"
	"strings"
)

// arkToken matches the compact form ark:NAAN/Name and the legacy slashed form
// ark:/NAAN/Name. The name part is path-like and may contain further slashes,
// colons, and hyphens.
var arkToken = regexp.MustCompile(`^(?i:ark):/?\d+/\S+$`)

// matchARK detects ARKs given bare, or embedded in the path of any resolver
// URL (n2t.net, *.bnf.fr, or an arbitrary host). The ark: token may appear
// anywhere in the URL path, not only at its start.
//
// Unlike doi: or arXiv:, the ark: label is part of the identifier's canonical
// form, so normalization keeps it: stripping it would leave NAAN/Name, which
// is indistinguishable from a Handle.
func matchARK(s string) (string, bool) {
	if arkToken.MatchString(s) {
		return s, true
	}
	u, ok := parseHTTPURL(s)
	if !ok {
		return "", false
	}
	path := u.Path
	idx := strings.Index(strings.ToLower(path), "ark:")
	if idx < 0 {
		return "", false
	}
	candidate := path[idx:]
	if arkToken.MatchString(candidate) {
		return candidate, true
	}
	return "", false
}
