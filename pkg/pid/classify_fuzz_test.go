package pid

import (
	"strings"
	"testing"
)

// FuzzClassify verifies the totality contract on arbitrary input: Classify
// never panics, always trims, and its normalized value is a fixed point.
func FuzzClassify(f *testing.F) {
	seeds := []string{
		"",
		"   ",
		"10.5880/fidgeo.2025.072",
		"https://doi.org/10.1029/2015EO022207",
		"doi:10.48550/arXiv.2501.13958",
		"ark:/12148/btv1b8449691v/f29",
		"https://n2t.net/ark:12148/btv1b8449691v",
		"arXiv:hep-th/9901001",
		"2501.13958v3",
		"2024A&A...687A..74T",
		"https://ui.adsabs.harvard.edu/abs/2024A%26A...687A..74T/abstract",
		"CSTR:31253.11.sciencedb.j00001.00123",
		"11234/56789",
		"https://hdl.handle.net/11234/56789",
		"https://example.com/resource",
		"'; DROP TABLE identifiers;--",
		string([]byte{0x00, 0x01, 0x02}),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		result := Classify(input)

		// Normalized output carries no surrounding whitespace.
		if result.NormalizedValue != strings.TrimSpace(result.NormalizedValue) {
			t.Errorf("normalized value has surrounding whitespace: %q", result.NormalizedValue)
		}

		// Scheme is always one of the recognized values.
		if _, ok := ParseScheme(result.Scheme.String()); !ok {
			t.Errorf("unrecognized scheme %v for input %q", result.Scheme, input)
		}

		// Normalization is a fixed point: reclassifying the normalized value
		// yields the same scheme and the same value.
		again := Classify(result.NormalizedValue)
		if again.Scheme != result.Scheme {
			t.Errorf("scheme drifted after normalization: %q -> %v then %v",
				input, result.Scheme, again.Scheme)
		}
		if again.NormalizedValue != result.NormalizedValue {
			t.Errorf("normalized value drifted: %q -> %q then %q",
				input, result.NormalizedValue, again.NormalizedValue)
		}
	})
}
