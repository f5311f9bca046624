package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgettracker/internal/core"
	"budgettracker/internal/profiles"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists profiles and commit audit entries in a local SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
}

var _ profiles.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save upserts the profile row and rewrites its expense rows in one
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, p *core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (name, income, savings, budget, current_currency, currency_symbol, profile_picture, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			income = excluded.income,
			savings = excluded.savings,
			budget = excluded.budget,
			current_currency = excluded.current_currency,
			currency_symbol = excluded.currency_symbol,
			profile_picture = excluded.profile_picture,
			updated_at = CURRENT_TIMESTAMP`,
		p.Name, p.Income, p.Savings, p.Budget,
		nullString(p.CurrentCurrency), p.CurrencySymbol, nullString(p.ProfilePicture))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE profile_name = ?`, p.Name); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	for i, e := range p.Expenses {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (profile_name, position, name, category, cost)
			VALUES (?, ?, ?, ?, ?)`,
			p.Name, i, e.Name, e.Category, e.Cost)
		if err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Profile saved",
		"profile", p.Name,
		"budget", p.Budget,
		"currency", p.CurrentCurrency,
		"expenses", len(p.Expenses))
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (*core.Profile, error) {
	p := &core.Profile{Name: name}
	var currency, picture sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT income, savings, budget, current_currency, currency_symbol, profile_picture
		FROM profiles WHERE name = ?`, name).
		Scan(&p.Income, &p.Savings, &p.Budget, &currency, &p.CurrencySymbol, &picture)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profiles.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	p.CurrentCurrency = currency.String
	p.ProfilePicture = picture.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, cost FROM expenses
		WHERE profile_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.Name, &e.Category, &e.Cost); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		p.Expenses = append(p.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return p, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan profile name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return profiles.ErrNotFound
	}

	// ON DELETE CASCADE is not enforced without foreign_keys pragma; clear
	// expense rows explicitly.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE profile_name = ?`, name); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	return nil
}

// CommitAudit is one recorded budget commit, written by the worker.
type CommitAudit struct {
	ProfileName string
	Currency    string
	Income      int
	Savings     int
	Budget      int
	CommittedAt time.Time
}

// RecordCommit appends an audit entry for a processed commit message.
func (s *SQLiteStore) RecordCommit(ctx context.Context, a CommitAudit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commit_audit (profile_name, currency, income, savings, budget, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ProfileName, a.Currency, a.Income, a.Savings, a.Budget, a.CommittedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert commit audit: %w", err)
	}

	slog.InfoContext(ctx, "Commit audit recorded",
		"profile", a.ProfileName,
		"currency", a.Currency,
		"budget", a.Budget)
	return nil
}

// RecentCommits returns the newest audit entries for a profile, most recent
// first.
func (s *SQLiteStore) RecentCommits(ctx context.Context, profileName string, limit int) ([]CommitAudit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT profile_name, currency, income, savings, budget, committed_at
		FROM commit_audit WHERE profile_name = ?
		ORDER BY committed_at DESC LIMIT ?`, profileName, limit)
	if err != nil {
		return nil, fmt.Errorf("select commit audit: %w", err)
	}
	defer rows.Close()

	var out []CommitAudit
	for rows.Next() {
		var a CommitAudit
		if err := rows.Scan(&a.ProfileName, &a.Currency, &a.Income, &a.Savings, &a.Budget, &a.CommittedAt); err != nil {
			return nil, fmt.Errorf("scan commit audit: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
