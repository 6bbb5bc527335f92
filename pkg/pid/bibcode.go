package pid

import (
	"regexp"
	"strings"
)

// bibcodePattern matches the 19-character fixed-width ADS bibcode:
// 4-digit year, 5-character journal abbreviation, 4-character volume,
// 1-character qualifier, 4-character page, and a trailing author initial.
// Fields are padded with dots, and ampersand is legal inside the journal
// abbreviation (A&A). Collapsing the padded fields into one 14-character run
// keeps the pattern honest about width without over-constraining each field.
var bibcodePattern = regexp.MustCompile(`^\d{4}[A-Za-z0-9&.]{14}[A-Za-z]$`)

// adsHosts are the ADS resolver hosts whose /abs/ path embeds a bibcode.
var adsHosts = []string{
	"ui.adsabs.harvard.edu",
	"adsabs.harvard.edu",
}

func matchBibcode(s string) (string, bool) {
	if bibcodePattern.MatchString(s) {
		return s, true
	}
	u, ok := parseHTTPURL(s)
	if !ok {
		return "", false
	}
	hosted := false
	for _, host := range adsHosts {
		if hostMatches(u.Host, host) {
			hosted = true
			break
		}
	}
	if !hosted {
		return "", false
	}
	// u.Path is percent-decoded, so an encoded ampersand (%26) in the URL has
	// already been restored before matching.
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] != "abs" {
		return "", false
	}
	candidate := segments[1]
	if bibcodePattern.MatchString(candidate) {
		return candidate, true
	}
	return "", false
}
