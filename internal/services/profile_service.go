package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"budgettracker/internal/core"
	"budgettracker/internal/profiles"
)

// Session holds the active profile. Exactly one profile is current at a time;
// commits always run against the session's profile.
type Session struct {
	mu      sync.Mutex
	current *core.Profile
}

func NewSession() *Session {
	return &Session{}
}

// Current returns the active profile, or nil when none is selected.
func (s *Session) Current() *core.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) SetCurrent(p *core.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
}

// ProfileService creates and selects profiles.
type ProfileService struct {
	store   profiles.Store
	session *Session
}

func NewProfileService(store profiles.Store, session *Session) *ProfileService {
	return &ProfileService{store: store, session: session}
}

// Create registers a new profile under the given username and makes it the
// session's current profile. It fails with profiles.ErrExists when the
// username is already taken.
func (s *ProfileService) Create(ctx context.Context, username string) (*core.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, core.ErrEmptyUsername
	}

	_, err := s.store.Load(ctx, username)
	if err == nil {
		return nil, profiles.ErrExists
	}
	if !errors.Is(err, profiles.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	p := &core.Profile{Name: username}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.session.SetCurrent(p)
	return p, nil
}

// Select loads the named profile and installs it as the session's current
// profile.
func (s *ProfileService) Select(ctx context.Context, username string) (*core.Profile, error) {
	p, err := s.store.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	s.session.SetCurrent(p)
	return p, nil
}

// List returns all stored profile identities.
func (s *ProfileService) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}
