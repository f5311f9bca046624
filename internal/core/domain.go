package core

import (
	"errors"
	"strings"
)

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// DefaultCurrency is used for display until a profile commits its first entry.
const DefaultCurrency = "EUR"

type (
	Period string

	// PeriodicAmount is a raw entry value tagged with the period it covers.
	// It only exists between form submission and normalization; it is never
	// persisted.
	PeriodicAmount struct {
		Amount int    `json:"amount"`
		Period Period `json:"period"`
	}

	// Expense belongs to exactly one Profile. Cost is denominated in the
	// owning profile's CurrentCurrency.
	Expense struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Cost     float64 `json:"cost"`
	}

	// Profile is a user's financial state. Income, Savings and Budget are
	// weekly-normalized integers; Budget is always Income - Savings after a
	// successful commit.
	Profile struct {
		Name            string    `json:"identity"`
		Income          int       `json:"income"`
		Savings         int       `json:"savings"`
		Budget          int       `json:"budget"`
		CurrentCurrency string    `json:"currentCurrency,omitempty"`
		CurrencySymbol  string    `json:"currencySymbol"`
		ProfilePicture  string    `json:"profilePicture,omitempty"`
		Expenses        []Expense `json:"expenses"`
	}
)

var (
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrNegativeAmount = errors.New("negative amount")
	ErrEmptyUsername  = errors.New("empty username")
)

func (p Period) Validate() error {
	switch p {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (pa PeriodicAmount) Validate() error {
	if pa.Amount < 0 {
		return ErrNegativeAmount
	}
	return pa.Period.Validate()
}

// NormalizeToWeekly converts an amount covering the given period into its
// weekly equivalent. Monthly amounts become amount*12/52 and yearly amounts
// amount/52, both with truncating integer division. The asymmetry between the
// two (monthly multiplies before dividing, yearly does not) matches the
// persisted data produced so far and must not be changed without migrating it.
func NormalizeToWeekly(amount int, period Period) int {
	switch period {
	case Monthly:
		return amount * 12 / 52
	case Yearly:
		return amount / 52
	default:
		return amount
	}
}

// Weekly returns the weekly-normalized value of the periodic amount.
func (pa PeriodicAmount) Weekly() int {
	return NormalizeToWeekly(pa.Amount, pa.Period)
}

// Currency returns the profile's currency, falling back to DefaultCurrency
// for profiles that have never committed an entry.
func (p *Profile) Currency() string {
	if p.CurrentCurrency == "" {
		return DefaultCurrency
	}
	return p.CurrentCurrency
}

func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyUsername
	}
	return nil
}
