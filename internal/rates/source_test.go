package rates

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type failingSource struct{}

func (failingSource) Fetch(context.Context) (Document, error) {
	return Document{}, errors.New("boom")
}

func TestLoad_Success(t *testing.T) {
	src := StaticSource{Success: true, Rates: map[string]float64{"USD": 1.1}}

	table := Load(context.Background(), src)
	if !table.Loaded() {
		t.Fatal("table should report loaded")
	}
	if got := table.RateOf("USD"); got != 1.1 {
		t.Errorf("RateOf(USD) = %v, want 1.1", got)
	}
}

func TestLoad_FailureYieldsEmptyTable(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{"fetch error", failingSource{}},
		{"success flag false", StaticSource{Success: false, Rates: map[string]float64{"USD": 1.1}}},
		{"nil source", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Load(context.Background(), tt.src)
			if table.Loaded() {
				t.Error("table should not report loaded")
			}
			if got := table.RateOf("USD"); got != 1.0 {
				t.Errorf("RateOf(USD) = %v, want identity fallback", got)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exchange_rates.json")
	content := `{"success": true, "rates": {"USD": 1.1, "NZD": 1.72}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := FileSource{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !doc.Success {
		t.Error("expected success flag")
	}
	if doc.Rates["NZD"] != 1.72 {
		t.Errorf("NZD rate = %v, want 1.72", doc.Rates["NZD"])
	}
}

func TestFileSource_MissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	if _, err := (FileSource{Path: filepath.Join(dir, "nope.json")}).Fetch(context.Background()); err == nil {
		t.Error("missing file should return error")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := (FileSource{Path: bad}).Fetch(context.Background()); err == nil {
		t.Error("malformed file should return error")
	}

	// Load still degrades to an empty table on either failure.
	table := Load(context.Background(), FileSource{Path: bad})
	if table.Loaded() {
		t.Error("table from malformed document should be empty")
	}
}
