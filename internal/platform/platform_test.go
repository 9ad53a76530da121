package platform

import "testing"

func TestParseKnownCodes(t *testing.T) {
	for _, p := range All() {
		got, err := Parse(string(p))
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", p, err)
		}
		if got != p {
			t.Errorf("Parse(%q) = %q", p, got)
		}
	}
}

func TestParseRejectsUnknownCodes(t *testing.T) {
	for _, s := range []string{"", "twitter", "newsapi", "NEWS API", "Guardian"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestValid(t *testing.T) {
	if !NewsAPI.Valid() {
		t.Error("NewsAPI should be valid")
	}
	if Platform("bogus").Valid() {
		t.Error("bogus platform should be invalid")
	}
}
