package core

import (
	"errors"
	"testing"
)

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12.5", false},
		{"-3", false},
		{"12a", false},
		{" 12", false},
	}

	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEntryFormCanSubmit(t *testing.T) {
	tests := []struct {
		name string
		form EntryForm
		want bool
	}{
		{
			name: "income only valid",
			form: EntryForm{IncomeAmount: "520", IncomePeriod: Yearly},
			want: true,
		},
		{
			name: "saving mode valid",
			form: EntryForm{IncomeAmount: "1000", IncomePeriod: Monthly, SavingAmount: "200", SavingPeriod: Weekly},
			want: true,
		},
		{
			name: "missing income",
			form: EntryForm{IncomePeriod: Weekly},
			want: false,
		},
		{
			name: "non numeric income",
			form: EntryForm{IncomeAmount: "abc", IncomePeriod: Weekly},
			want: false,
		},
		{
			name: "saving mode with bad saving amount",
			form: EntryForm{IncomeAmount: "100", IncomePeriod: Weekly, SavingAmount: "x", SavingPeriod: Weekly},
			want: false,
		},
		{
			name: "bad period",
			form: EntryForm{IncomeAmount: "100", IncomePeriod: "fortnightly"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.CanSubmit(); got != tt.want {
				t.Errorf("CanSubmit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryFormEntry(t *testing.T) {
	form := EntryForm{
		IncomeAmount: "1000",
		IncomePeriod: Monthly,
		SavingAmount: "200",
		SavingPeriod: Weekly,
		Currency:     "USD",
		Symbol:       "$",
	}

	entry, err := form.Entry()
	if err != nil {
		t.Fatalf("Entry() error: %v", err)
	}
	if entry.Income.Amount != 1000 || entry.Income.Period != Monthly {
		t.Errorf("income = %+v", entry.Income)
	}
	if entry.Saving == nil || entry.Saving.Amount != 200 || entry.Saving.Period != Weekly {
		t.Errorf("saving = %+v", entry.Saving)
	}
	if entry.Currency != "USD" || entry.Symbol != "$" {
		t.Errorf("currency = %q symbol = %q", entry.Currency, entry.Symbol)
	}
}

func TestEntryFormEntry_IncomeOnly(t *testing.T) {
	form := EntryForm{IncomeAmount: "520", IncomePeriod: Yearly, Currency: "EUR"}

	entry, err := form.Entry()
	if err != nil {
		t.Fatalf("Entry() error: %v", err)
	}
	if entry.Saving != nil {
		t.Errorf("income-only entry should have nil saving, got %+v", entry.Saving)
	}
}

func TestEntryFormEntry_Invalid(t *testing.T) {
	form := EntryForm{IncomeAmount: "12.5", IncomePeriod: Weekly}
	if _, err := form.Entry(); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("Entry() error = %v, want ErrNotNumeric", err)
	}

	form = EntryForm{IncomeAmount: "100", IncomePeriod: "hourly"}
	if _, err := form.Entry(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Entry() error = %v, want ErrInvalidPeriod", err)
	}
}
