// Package core defines the budget domain: profiles, expenses, periodic
// amounts and weekly normalization.
//
// This file covers the budget entry screen input. The raw form state is kept
// separate from the typed entry so that submit validation stays a pure
// function, independent of any UI binding.
package core

import (
	"errors"
	"strconv"
	"strings"
)

// EntryForm is the raw state of the budget entry screen. Amounts are the
// uninterpreted text field contents; a non-empty SavingAmount selects saving
// mode.
type EntryForm struct {
	IncomeAmount string
	IncomePeriod Period
	SavingAmount string
	SavingPeriod Period
	Currency     string
	Symbol       string
}

// Entry is a validated budget entry ready for commit. Saving is nil in
// income-only mode.
type Entry struct {
	Income   PeriodicAmount
	Saving   *PeriodicAmount
	Currency string
	Symbol   string
}

var ErrNotNumeric = errors.New("amount is not a non-negative integer")

// IsNumeric reports whether s is a plain non-negative integer, the only form
// the entry fields accept.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CanSubmit reports whether the form is complete enough to commit: a numeric
// income amount, a numeric saving amount when saving mode is active, and
// valid periods.
func (f EntryForm) CanSubmit() bool {
	if !IsNumeric(strings.TrimSpace(f.IncomeAmount)) {
		return false
	}
	if f.IncomePeriod.Validate() != nil {
		return false
	}
	if f.SavingMode() {
		if !IsNumeric(strings.TrimSpace(f.SavingAmount)) {
			return false
		}
		if f.SavingPeriod.Validate() != nil {
			return false
		}
	}
	return true
}

// SavingMode reports whether the form carries a savings goal.
func (f EntryForm) SavingMode() bool {
	return strings.TrimSpace(f.SavingAmount) != ""
}

// Entry parses the form into a typed entry. It fails with ErrNotNumeric when
// CanSubmit would return false for an amount field.
func (f EntryForm) Entry() (Entry, error) {
	income, err := parseAmount(f.IncomeAmount)
	if err != nil {
		return Entry{}, err
	}
	if err := f.IncomePeriod.Validate(); err != nil {
		return Entry{}, err
	}

	e := Entry{
		Income:   PeriodicAmount{Amount: income, Period: f.IncomePeriod},
		Currency: strings.TrimSpace(f.Currency),
		Symbol:   f.Symbol,
	}

	if f.SavingMode() {
		saving, err := parseAmount(f.SavingAmount)
		if err != nil {
			return Entry{}, err
		}
		if err := f.SavingPeriod.Validate(); err != nil {
			return Entry{}, err
		}
		e.Saving = &PeriodicAmount{Amount: saving, Period: f.SavingPeriod}
	}

	return e, nil
}

func parseAmount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return 0, ErrNotNumeric
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrNotNumeric
	}
	return v, nil
}
