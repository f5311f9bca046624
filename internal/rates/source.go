package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Document is the rate source wire format: a success flag and a mapping of
// currency code to rate against the implicit base currency.
type Document struct {
	Success bool               `json:"success"`
	Rates   map[string]float64 `json:"rates"`
}

// Source fetches a rate document from an external resource.
type Source interface {
	Fetch(ctx context.Context) (Document, error)
}

// Load builds a table from the source. It never fails: an unreadable or
// unparsable document, or one with success=false, yields an empty table and
// a warning log. Callers treat the absence of rates as "no conversion
// available" and proceed with identity rates.
func Load(ctx context.Context, src Source) Table {
	if src == nil {
		return Empty()
	}

	doc, err := src.Fetch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Rate document unavailable, using empty table", "error", err)
		return Empty()
	}
	if !doc.Success {
		slog.WarnContext(ctx, "Rate document reported failure, using empty table")
		return Empty()
	}

	return NewTable(doc.Rates)
}

// FileSource reads the rate document from a JSON file on disk, the way the
// desktop app shipped its exchange_rates.json snapshot.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) (Document, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return Document{}, fmt.Errorf("read rate document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return Document{}, fmt.Errorf("parse rate document: %w", err)
	}
	return doc, nil
}

// StaticSource serves a fixed document. Used by tests and as a seed source.
type StaticSource Document

func (s StaticSource) Fetch(_ context.Context) (Document, error) {
	return Document(s), nil
}
