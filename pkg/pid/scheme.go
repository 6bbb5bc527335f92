// Package pid detects and normalizes persistent research identifiers.
//
// Given a raw, user-supplied string — a bare identifier, a labelled one
// (doi:, arXiv:, CSTR:), or a full resolver URL — Classify returns the most
// specific scheme the string belongs to together with its normalized form.
// Classification is pure text processing: no I/O, no state, no failures.
package pid

// Scheme is the detected identifier scheme. The zero value is SchemeUnknown.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDOI
	SchemeARK
	SchemeArXiv
	SchemeBibcode
	SchemeCSTR
	SchemeHandle
	SchemeURL
)

// schemeNames are the exact strings exposed at the interface boundary.
// They match the badge labels rendered by consuming UIs.
var schemeNames = map[Scheme]string{
	SchemeUnknown: "unknown",
	SchemeDOI:     "DOI",
	SchemeARK:     "ARK",
	SchemeArXiv:   "arXiv",
	SchemeBibcode: "bibcode",
	SchemeCSTR:    "CSTR",
	SchemeHandle:  "Handle",
	SchemeURL:     "URL",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return schemeNames[SchemeUnknown]
}

// ParseScheme maps a badge label back to its Scheme. The second return value
// reports whether the label is recognized.
func ParseScheme(name string) (Scheme, bool) {
	for s, n := range schemeNames {
		if n == name {
			return s, true
		}
	}
	return SchemeUnknown, false
}

// Schemes returns all recognized scheme labels in detection precedence order,
// ending with the catch-all URL and unknown labels.
func Schemes() []string {
	ordered := []Scheme{
		SchemeDOI, SchemeARK, SchemeArXiv, SchemeBibcode,
		SchemeCSTR, SchemeHandle, SchemeURL, SchemeUnknown,
	}
	names := make([]string, 0, len(ordered))
	for _, s := range ordered {
		names = append(names, s.String())
	}
	return names
}
