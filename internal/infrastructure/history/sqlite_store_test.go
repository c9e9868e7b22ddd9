package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/xplain-go/internal/domain"
)

func newTestSQLiteStore(t *testing.T, maxEntries int) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(t.TempDir(), maxEntries)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteAddGetAndCount(t *testing.T) {
	store := newTestSQLiteStore(t, 0)

	_ = store.Add(domain.TypeCmd, "ls", "lists files", "en", nil)
	_ = store.Add(domain.TypeDiff, "git diff HEAD~1", "one commit", "en", map[string]any{"ref": "HEAD~1"})

	if store.Count() != 2 {
		t.Fatalf("Count() = %d", store.Count())
	}
	entry, ok := store.Get(1)
	if !ok || entry.CommandType != domain.TypeDiff {
		t.Fatalf("Get(1) = %+v, %v", entry, ok)
	}
	if entry.Metadata["ref"] != "HEAD~1" {
		t.Fatalf("metadata = %+v", entry.Metadata)
	}
	if _, ok := store.Get(3); ok {
		t.Fatal("Get(3) beyond count should not be found")
	}
}

func TestSQLiteSearchAndListOrder(t *testing.T) {
	store := newTestSQLiteStore(t, 0)
	for _, q := range []string{"docker run nginx", "git push origin main", "docker: command not found"} {
		_ = store.Add(domain.TypeCmd, q, "e", "en", nil)
	}

	matches, err := store.Search("docker", 20)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 2 || matches[0].Query != "docker run nginx" {
		t.Fatalf("Search() = %+v", matches)
	}

	entries, err := store.List(2, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[1].Query != "docker: command not found" {
		t.Fatalf("List(2) = %+v", entries)
	}
}

func TestSQLiteTrimEvictsOldest(t *testing.T) {
	store := newTestSQLiteStore(t, 10)
	for i := 0; i < 15; i++ {
		if err := store.Add(domain.TypeCmd, fmt.Sprintf("q-%d", i), "e", "en", nil); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if store.Count() != 10 {
		t.Fatalf("Count() = %d, want 10", store.Count())
	}
	oldest, ok := store.Get(10)
	if !ok || oldest.Query != "q-5" {
		t.Fatalf("oldest retained = %+v, want q-5", oldest)
	}
}

func TestExportJSONL(t *testing.T) {
	store := newTestStore(t)
	_ = store.Add(domain.TypeCmd, "ls", "lists", "en", nil)
	_ = store.Add(domain.TypePipe, "output", "explained", "en", nil)

	dest := filepath.Join(t.TempDir(), "export.jsonl")
	count, err := Export(store, dest)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Export() count = %d", count)
	}

	file, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines++
	}
	if lines != 2 {
		t.Fatalf("exported %d lines, want 2", lines)
	}
}

func TestExportSQLite(t *testing.T) {
	store := newTestStore(t)
	_ = store.Add(domain.TypeWtf, "make build (exit 2)", "missing target", "en", nil)

	dest := filepath.Join(t.TempDir(), "archive.db")
	if _, err := Export(store, dest); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	archive, err := openSQLiteStore(dest, 0)
	if err != nil {
		t.Fatalf("open exported db: %v", err)
	}
	defer archive.Close()
	if archive.Count() != 1 {
		t.Fatalf("archive Count() = %d", archive.Count())
	}
	entry, _ := archive.Get(1)
	original, _ := store.Get(1)
	if entry.Timestamp != original.Timestamp {
		t.Fatalf("timestamp not preserved: %v != %v", entry.Timestamp, original.Timestamp)
	}
}
