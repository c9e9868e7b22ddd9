package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/ports"
)

const sqliteFileName = "history.db"

// SQLiteStore persists history in a SQLite database. Same contract as
// JSONStore, selected via history.backend in the config file.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewSQLiteStore creates (or opens) the database under dir.
func NewSQLiteStore(dir string, maxEntries int) (*SQLiteStore, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	return openSQLiteStore(filepath.Join(dir, sqliteFileName), maxEntries)
}

func openSQLiteStore(path string, maxEntries int) (*SQLiteStore, error) {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxHistoryEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	store := &SQLiteStore{db: db, path: path, maxEntries: maxEntries}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history database: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp REAL,
		command_type TEXT,
		query TEXT,
		explanation TEXT,
		language TEXT,
		metadata TEXT
	);`)
	return err
}

// Add inserts a new entry and prunes the oldest rows beyond the maximum.
func (s *SQLiteStore) Add(commandType domain.CommandType, query, explanation, language string, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if metadata == nil {
		metadata = map[string]any{}
	}
	entry := domain.HistoryEntry{
		Timestamp:   float64(time.Now().UnixNano()) / float64(time.Second),
		CommandType: commandType,
		Query:       query,
		Explanation: explanation,
		Language:    language,
		Metadata:    metadata,
	}
	if err := s.insert(entry); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`DELETE FROM entries WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)`,
		s.maxEntries,
	)
	return err
}

// insert writes an entry preserving its timestamp (used by Add and Export).
func (s *SQLiteStore) insert(entry domain.HistoryEntry) error {
	meta, err := json.Marshal(entry.Metadata)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO entries (timestamp, command_type, query, explanation, language, metadata) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp, string(entry.CommandType), entry.Query, entry.Explanation, entry.Language, string(meta),
	)
	return err
}

// List returns the most recent limit entries in insertion order.
func (s *SQLiteStore) List(limit int, typeFilter domain.CommandType) ([]domain.HistoryEntry, error) {
	builder := strings.Builder{}
	builder.WriteString(selectColumns)
	var args []any
	if typeFilter != "" {
		builder.WriteString(" WHERE command_type = ?")
		args = append(args, string(typeFilter))
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	entries, err := s.query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	reverse(entries)
	return entries, nil
}

// Search matches query against the query or explanation text.
func (s *SQLiteStore) Search(query string, limit int) ([]domain.HistoryEntry, error) {
	builder := strings.Builder{}
	builder.WriteString(selectColumns)
	builder.WriteString(" WHERE query LIKE ? OR explanation LIKE ? ORDER BY id DESC")
	args := []any{"%" + query + "%", "%" + query + "%"}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	entries, err := s.query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	reverse(entries)
	return entries, nil
}

// Get returns the entry at 1-based index from the most recent.
func (s *SQLiteStore) Get(index int) (domain.HistoryEntry, bool) {
	if index < 1 {
		return domain.HistoryEntry{}, false
	}
	entries, err := s.query(selectColumns+" ORDER BY id DESC LIMIT 1 OFFSET ?", index-1)
	if err != nil || len(entries) == 0 {
		return domain.HistoryEntry{}, false
	}
	return entries[0], true
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Count returns the total number of retained entries.
func (s *SQLiteStore) Count() int {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0
	}
	return count
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = "SELECT timestamp, command_type, query, explanation, language, metadata FROM entries"

func (s *SQLiteStore) query(q string, args ...any) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var commandType, meta string
		if err := rows.Scan(&entry.Timestamp, &commandType, &entry.Query, &entry.Explanation, &entry.Language, &meta); err != nil {
			return nil, err
		}
		entry.CommandType = domain.CommandType(commandType)
		if err := json.Unmarshal([]byte(meta), &entry.Metadata); err != nil {
			entry.Metadata = map[string]any{}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func reverse(entries []domain.HistoryEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
