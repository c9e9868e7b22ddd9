package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/xplain-go/internal/domain"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSONStore(t.TempDir(), 0)
}

func TestAddThenGetMostRecent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add(domain.TypeCmd, "ls -la", "Lists files in detail", "en", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add(domain.TypeError, "TypeError", "Type mismatch", "vi", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	entry, ok := store.Get(1)
	if !ok {
		t.Fatal("Get(1) not found")
	}
	if entry.CommandType != domain.TypeError || entry.Query != "TypeError" {
		t.Fatalf("Get(1) = %+v, want most recent entry", entry)
	}

	entry, ok = store.Get(2)
	if !ok || entry.Query != "ls -la" {
		t.Fatalf("Get(2) = %+v, %v", entry, ok)
	}

	if _, ok := store.Get(0); ok {
		t.Fatal("Get(0) should not be found")
	}
	if _, ok := store.Get(3); ok {
		t.Fatal("Get(3) beyond count should not be found")
	}
}

func TestSearchMatchesQueryAndExplanation(t *testing.T) {
	store := newTestStore(t)
	seed := []string{"docker run nginx", "git push origin main", "docker: command not found"}
	for _, q := range seed {
		if err := store.Add(domain.TypeCmd, q, "explanation", "en", nil); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	matches, err := store.Search("docker", 20)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Search(docker) returned %d matches, want 2", len(matches))
	}
	if matches[0].Query != "docker run nginx" || matches[1].Query != "docker: command not found" {
		t.Fatalf("matches out of insertion order: %+v", matches)
	}

	// case-insensitive, explanation text included
	if err := store.Add(domain.TypeChat, "what is k8s", "Kubernetes orchestrates DOCKER containers", "en", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	matches, err = store.Search("DoCkEr", 20)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("case-insensitive search returned %d matches, want 3", len(matches))
	}
}

func TestListLimitAndTypeFilter(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		_ = store.Add(domain.TypeCmd, fmt.Sprintf("cmd-%d", i), "e", "en", nil)
		_ = store.Add(domain.TypePipe, fmt.Sprintf("pipe-%d", i), "e", "en", nil)
	}

	entries, err := store.List(3, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 || entries[0].Query != "pipe-3" || entries[2].Query != "pipe-4" {
		t.Fatalf("List(3) window wrong: %+v", entries)
	}

	entries, err = store.List(2, domain.TypePipe)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Query != "pipe-3" || entries[1].Query != "pipe-4" {
		t.Fatalf("List(2, pipe) = %+v", entries)
	}
}

func TestClearResetsCount(t *testing.T) {
	store := newTestStore(t)
	_ = store.Add(domain.TypeCmd, "q", "e", "en", nil)
	if store.Count() != 1 {
		t.Fatalf("Count() = %d", store.Count())
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if store.Count() != 0 {
		t.Fatalf("Count() after Clear = %d, want 0", store.Count())
	}
}

func TestTrimEvictsOldestFirst(t *testing.T) {
	store := NewJSONStore(t.TempDir(), 0)
	total := domain.DefaultMaxHistoryEntries + 25
	for i := 0; i < total; i++ {
		if err := store.Add(domain.TypeCmd, fmt.Sprintf("q-%d", i), "e", "en", nil); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if store.Count() != domain.DefaultMaxHistoryEntries {
		t.Fatalf("Count() = %d, want %d", store.Count(), domain.DefaultMaxHistoryEntries)
	}
	oldest, ok := store.Get(domain.DefaultMaxHistoryEntries)
	if !ok || oldest.Query != "q-25" {
		t.Fatalf("oldest retained = %+v, want q-25", oldest)
	}
	newest, _ := store.Get(1)
	if newest.Query != fmt.Sprintf("q-%d", total-1) {
		t.Fatalf("newest = %q", newest.Query)
	}
}

func TestEntriesSurviveReload(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir, 0)
	meta := map[string]any{"session": "abc"}
	if err := store.Add(domain.TypeChat, "hello", "world", "ja", meta); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reopened := NewJSONStore(dir, 0)
	entry, ok := reopened.Get(1)
	if !ok {
		t.Fatal("entry lost across reload")
	}
	want := domain.HistoryEntry{
		Timestamp:   entry.Timestamp,
		CommandType: domain.TypeChat,
		Query:       "hello",
		Explanation: "world",
		Language:    "ja",
		Metadata:    map[string]any{"session": "abc"},
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	if entry.Timestamp <= 0 {
		t.Fatalf("timestamp = %v", entry.Timestamp)
	}
}

func TestCorruptFileBehavesAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, historyFileName)
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(dir, 0)
	if store.Count() != 0 {
		t.Fatalf("Count() = %d on corrupt file, want 0", store.Count())
	}

	// next write overwrites the corrupt file
	if err := store.Add(domain.TypeCmd, "q", "e", "en", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	reopened := NewJSONStore(dir, 0)
	if reopened.Count() != 1 {
		t.Fatalf("Count() after rewrite = %d, want 1", reopened.Count())
	}
}
