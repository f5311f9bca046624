// Package google implements a rate source backed by a Google Sheets
// spreadsheet, for deployments that maintain their rate snapshot in a shared
// sheet instead of a local JSON file.
//
// The sheet is expected to hold one currency per row: code in column A, rate
// against the base currency in column B. A header row is tolerated.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"budgettracker/internal/rates"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	ratesSheet    string
}

var _ rates.Source = (*Source)(nil)

// NewFromEnv creates a Sheets-backed rate source using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_RATES_SHEET_NAME (default "Rates"), plus service account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Source, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheet := strings.TrimSpace(os.Getenv("GOOGLE_RATES_SHEET_NAME"))
	if sheet == "" {
		sheet = "Rates"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		ratesSheet:    sheet,
	}, nil
}

// newSheetsService initializes a Sheets service using service account
// credentials from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Fetch reads the rates sheet and builds a rate document. A readable sheet
// always yields success=true; rows that do not parse as code/rate pairs are
// skipped with a debug log.
func (s *Source) Fetch(ctx context.Context) (rates.Document, error) {
	if s.svc == nil {
		return rates.Document{}, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:B", s.ratesSheet)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return rates.Document{}, fmt.Errorf("read %s: %w", rng, err)
	}

	doc := parseRateRows(resp.Values)
	slog.DebugContext(ctx, "Fetched rate sheet",
		"sheet", s.ratesSheet,
		"rows", len(resp.Values),
		"rates", len(doc.Rates))
	return doc, nil
}
