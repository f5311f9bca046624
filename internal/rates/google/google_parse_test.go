package google

import "testing"

func TestParseRateRows(t *testing.T) {
	values := [][]interface{}{
		{"Code", "Rate"}, // header
		{"USD", 1.1},
		{"NZD", "1.72"},
		{"GBP", "0,86"}, // decimal comma
		{"", 2.0},       // blank code
		{"# comment", 3.0},
		{"CHF"},          // short row
		{"AUD", "oops"},  // unparsable rate
		{"sek", "10.55"}, // lowercase code
	}

	doc := parseRateRows(values)

	if !doc.Success {
		t.Fatal("parsed document should report success")
	}

	want := map[string]float64{
		"USD": 1.1,
		"NZD": 1.72,
		"GBP": 0.86,
		"SEK": 10.55,
	}
	if len(doc.Rates) != len(want) {
		t.Fatalf("got %d rates, want %d: %v", len(doc.Rates), len(want), doc.Rates)
	}
	for code, rate := range want {
		if doc.Rates[code] != rate {
			t.Errorf("rate[%s] = %v, want %v", code, doc.Rates[code], rate)
		}
	}
}

func TestParseRateRows_Empty(t *testing.T) {
	doc := parseRateRows(nil)
	if !doc.Success {
		t.Error("empty sheet should still parse as a successful document")
	}
	if len(doc.Rates) != 0 {
		t.Errorf("expected no rates, got %v", doc.Rates)
	}
}
