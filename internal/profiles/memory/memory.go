// Package memory provides a profile store held in memory, optionally backed
// by a directory of one JSON file per profile (the format the desktop app
// used for its profile slots).
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"budgettracker/internal/core"
	"budgettracker/internal/profiles"
)

type Store struct {
	mu    sync.Mutex
	items map[string]*core.Profile
	dir   string // when set, Save/Delete mirror to <dir>/<name>.json
}

var _ profiles.Store = (*Store)(nil)

func New() *Store {
	return &Store{items: map[string]*core.Profile{}}
}

// NewFromDir loads any existing profile files from dir and mirrors all
// subsequent writes back to it. Unreadable files are skipped.
func NewFromDir(dir string) *Store {
	s := &Store{items: map[string]*core.Profile{}, dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return s
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var p core.Profile
		if err := json.Unmarshal(content, &p); err != nil || p.Name == "" {
			continue
		}
		s.items[p.Name] = &p
	}

	return s
}

func (s *Store) Save(_ context.Context, p *core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := clone(p)
	if s.dir != "" {
		if err := s.writeFile(cp); err != nil {
			return err
		}
	}
	s.items[p.Name] = cp
	return nil
}

func (s *Store) Load(_ context.Context, name string) (*core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[name]
	if !ok {
		return nil, profiles.ErrNotFound
	}
	return clone(p), nil
}

func (s *Store) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[name]; !ok {
		return profiles.ErrNotFound
	}
	delete(s.items, name)
	if s.dir != "" {
		_ = os.Remove(s.profilePath(name))
	}
	return nil
}

func (s *Store) writeFile(p *core.Profile) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	content, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(s.profilePath(p.Name), content, 0644); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	return nil
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// clone copies the profile so callers cannot mutate stored state through a
// shared expense slice.
func clone(p *core.Profile) *core.Profile {
	cp := *p
	cp.Expenses = append([]core.Expense(nil), p.Expenses...)
	return &cp
}
