// Package services provides business logic and orchestration services.
//
// BudgetService is the calculator behind the budget entry screen: it turns a
// committed entry into the profile's weekly-normalized financial state and
// re-denominates existing expenses when the currency changes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budgettracker/internal/amqp"
	"budgettracker/internal/core"
	"budgettracker/internal/profiles"
	"budgettracker/internal/rates"
)

// CommitPublisher notifies downstream consumers of a successful commit.
type CommitPublisher interface {
	PublishProfileCommitted(ctx context.Context, msg *amqp.ProfileCommittedMessage) error
}

// BudgetService orchestrates normalization, currency conversion and
// persistence for budget entry commits.
type BudgetService struct {
	store     profiles.Store
	source    rates.Source
	publisher CommitPublisher
}

// NewBudgetService creates the service. source may be nil (all conversions
// degrade to identity) and publisher may be nil (commit events are skipped).
func NewBudgetService(store profiles.Store, source rates.Source, publisher CommitPublisher) *BudgetService {
	return &BudgetService{
		store:     store,
		source:    source,
		publisher: publisher,
	}
}

// Commit applies the entry to the profile and persists it.
//
// The rate table is loaded once, up front, so every expense in the commit
// converts against the same snapshot. Expense costs are converted from the
// profile's stored currency (which may still be unset, converting with the
// identity rate) to the entry's currency before the financial fields are
// recomputed.
//
// The profile is mutated before persistence and is not rolled back when the
// save fails: on error the in-memory profile already carries the new state
// and the caller must re-fetch or discard it.
func (s *BudgetService) Commit(ctx context.Context, entry core.Entry, profile *core.Profile) error {
	table := rates.Load(ctx, s.source)

	fromCurrency := profile.CurrentCurrency
	for i := range profile.Expenses {
		profile.Expenses[i].Cost = table.Convert(profile.Expenses[i].Cost, fromCurrency, entry.Currency)
	}

	weeklyIncome := entry.Income.Weekly()
	weeklySavings := 0
	if entry.Saving != nil {
		weeklySavings = entry.Saving.Weekly()
	}

	profile.Income = weeklyIncome
	profile.Savings = weeklySavings
	profile.Budget = weeklyIncome - weeklySavings
	profile.CurrentCurrency = entry.Currency
	if entry.Symbol != "" {
		profile.CurrencySymbol = entry.Symbol
	}

	if err := s.store.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	slog.InfoContext(ctx, "Budget entry committed",
		"profile", profile.Name,
		"income", profile.Income,
		"savings", profile.Savings,
		"budget", profile.Budget,
		"currency", profile.CurrentCurrency,
		"rates_loaded", table.Loaded())

	s.publishCommitted(ctx, profile)
	return nil
}

// publishCommitted is best effort: a commit never fails because the broker
// is down.
func (s *BudgetService) publishCommitted(ctx context.Context, p *core.Profile) {
	if s.publisher == nil {
		return
	}

	msg := &amqp.ProfileCommittedMessage{
		ProfileName: p.Name,
		Currency:    p.CurrentCurrency,
		Income:      p.Income,
		Savings:     p.Savings,
		Budget:      p.Budget,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.PublishProfileCommitted(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish commit message",
			"profile", p.Name, "error", err)
	}
}
