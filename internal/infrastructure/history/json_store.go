// Package history persists the append-only explanation log.
//
// Two backends implement ports.HistoryRepository: a JSON document store (the
// default) and a SQLite store. Both enforce the same retention bound and the
// same query semantics.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

const historyFileName = "history.json"

// JSONStore keeps all entries in a single JSON document, lazily loaded on
// first access and cached in memory for the remainder of the process. Every
// mutation rewrites the whole file. Concurrent processes racing on the same
// file is an accepted unguarded hazard.
type JSONStore struct {
	path       string
	maxEntries int

	mu      sync.Mutex
	entries []domain.HistoryEntry
	loaded  bool

	now func() time.Time
}

// NewJSONStore creates a store under dir (default ~/.xplain). maxEntries <= 0
// falls back to domain.DefaultMaxHistoryEntries.
func NewJSONStore(dir string, maxEntries int) *JSONStore {
	if dir == "" {
		dir = DefaultDir()
	}
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxHistoryEntries
	}
	return &JSONStore{
		path:       filepath.Join(dir, historyFileName),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// DefaultDir returns the per-user history location, honoring the
// XPLAIN_HISTORY_DIR override.
func DefaultDir() string {
	if dir := os.Getenv("XPLAIN_HISTORY_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(userHome(), ".xplain")
}

// Add appends a new immutable entry with the current timestamp and rewrites
// the backing document, evicting oldest entries beyond the retained maximum.
func (s *JSONStore) Add(commandType domain.CommandType, query, explanation, language string, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if metadata == nil {
		metadata = map[string]any{}
	}
	s.entries = append(s.entries, domain.HistoryEntry{
		Timestamp:   float64(s.now().UnixNano()) / float64(time.Second),
		CommandType: commandType,
		Query:       query,
		Explanation: explanation,
		Language:    language,
		Metadata:    metadata,
	})
	return s.save()
}

// List returns the most recent limit entries, optionally filtered by type,
// oldest of the selected window first.
func (s *JSONStore) List(limit int, typeFilter domain.CommandType) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	entries := s.entries
	if typeFilter != "" {
		filtered := make([]domain.HistoryEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.CommandType == typeFilter {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	return tail(entries, limit), nil
}

// Search matches query case-insensitively against the query or explanation
// text and returns at most limit matches in insertion order.
func (s *JSONStore) Search(query string, limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	needle := strings.ToLower(query)
	var matches []domain.HistoryEntry
	for _, entry := range s.entries {
		if strings.Contains(strings.ToLower(entry.Query), needle) ||
			strings.Contains(strings.ToLower(entry.Explanation), needle) {
			matches = append(matches, entry)
		}
	}
	return tail(matches, limit), nil
}

// Get returns the entry at 1-based index counting backward from the most
// recent entry (1 = most recent).
func (s *JSONStore) Get(index int) (domain.HistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if index < 1 || index > len(s.entries) {
		return domain.HistoryEntry{}, false
	}
	return s.entries[len(s.entries)-index], true
}

// Clear discards all entries and rewrites the empty backing document.
func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []domain.HistoryEntry{}
	s.loaded = true
	return s.save()
}

// Count returns the total number of retained entries.
func (s *JSONStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return len(s.entries)
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// load reads the backing document once per process. A missing, unreadable, or
// malformed file behaves as an empty store; the next write overwrites it.
func (s *JSONStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.entries = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	s.entries = entries
}

func (s *JSONStore) save() error {
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[len(s.entries)-s.maxEntries:]
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func tail(entries []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]domain.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryRepository = (*JSONStore)(nil)
