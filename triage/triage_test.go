package triage

import "testing"

func TestClassifyHighKeywords(t *testing.T) {
	cases := []string{
		"chest tightness since morning",
		"shortness of BREATH",
		"my heart is racing",
	}
	for _, in := range cases {
		res := Classify(in)
		if res.Level != High {
			t.Errorf("Classify(%q) level = %s, want High", in, res.Level)
		}
		if res.Score != 90 {
			t.Errorf("Classify(%q) score = %d, want 90", in, res.Score)
		}
		if !res.Urgent() {
			t.Errorf("Classify(%q) should be flagged urgent", in)
		}
	}
}

func TestClassifyHighBeatsMedium(t *testing.T) {
	// A report carrying both a High and a Medium keyword must classify High.
	res := Classify("chest pain and fever")
	if res.Level != High {
		t.Fatalf("level = %s, want High", res.Level)
	}
}

func TestClassifyMediumKeywords(t *testing.T) {
	for _, in := range []string{"high fever", "caught the flu", "knee pain"} {
		res := Classify(in)
		if res.Level != Medium || res.Score != 60 {
			t.Errorf("Classify(%q) = %+v, want Medium/60", in, res)
		}
		if res.Urgent() {
			t.Errorf("Classify(%q) should not be urgent", in)
		}
	}
}

func TestClassifyDefaultsToLow(t *testing.T) {
	for _, in := range []string{"", "mild headache", "feeling tired lately"} {
		res := Classify(in)
		if res.Level != Low || res.Score != 30 {
			t.Errorf("Classify(%q) = %+v, want Low/30", in, res)
		}
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if res := Classify("CHEST DISCOMFORT"); res.Level != High {
		t.Fatalf("level = %s, want High", res.Level)
	}
	if res := Classify("FeVeR"); res.Level != Medium {
		t.Fatalf("level = %s, want Medium", res.Level)
	}
}
