// Package profiles defines the persistence port for user profiles.
package profiles

import (
	"context"
	"errors"

	"budgettracker/internal/core"
)

var (
	ErrNotFound = errors.New("profile not found")
	ErrExists   = errors.New("profile already exists")
)

// Store is the outbound port for durable profile persistence. Writes are
// last-write-wins; callers serialize commits for a given profile identity
// themselves.
type Store interface {
	// Save persists the profile, creating or overwriting its record.
	Save(ctx context.Context, p *core.Profile) error

	// Load returns the profile with the given identity, or ErrNotFound.
	Load(ctx context.Context, name string) (*core.Profile, error)

	// List returns the identities of all stored profiles.
	List(ctx context.Context) ([]string, error)

	// Delete removes the profile, or returns ErrNotFound.
	Delete(ctx context.Context, name string) error
}
