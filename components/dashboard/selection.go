package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// SelectionStorageKey is the storage key holding the selected project id.
const SelectionStorageKey = "l10n-selected-project-id"

// KVStore is persistent key-value storage for small client state.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKVStore is a concurrency-safe in-process KVStore.
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string]string)}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// ProjectSelection holds the operator's selected project. The stored value is
// read once when the selection is loaded; every change is written through.
type ProjectSelection struct {
	store KVStore
	key   string

	mu       sync.RWMutex
	selected string
}

// LoadProjectSelection reads the persisted selection from store. Empty values
// and the literal "null" count as no selection.
func LoadProjectSelection(ctx context.Context, store KVStore) (*ProjectSelection, error) {
	if store == nil {
		store = NewMemoryKVStore()
	}
	sel := &ProjectSelection{store: store, key: SelectionStorageKey}
	value, ok, err := store.Get(ctx, sel.key)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load project selection: %w", err)
	}
	if ok {
		sel.selected = normalizeSelection(value)
	}
	return sel, nil
}

// Selected returns the current project id, empty when none.
func (s *ProjectSelection) Selected() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select stores id as the selected project. An empty id clears the selection.
func (s *ProjectSelection) Select(ctx context.Context, id string) error {
	id = normalizeSelection(id)
	if id == "" {
		return s.Clear(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, s.key, id); err != nil {
		return fmt.Errorf("dashboard: save project selection: %w", err)
	}
	s.selected = id
	return nil
}

// Clear removes the persisted selection.
func (s *ProjectSelection) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("dashboard: clear project selection: %w", err)
	}
	s.selected = ""
	return nil
}

func normalizeSelection(value string) string {
	value = strings.TrimSpace(value)
	if value == "null" || value == "undefined" {
		return ""
	}
	return value
}
