package domain

import (
	"strings"
	"testing"
	"time"
)

func TestHistoryEntryTime(t *testing.T) {
	entry := HistoryEntry{Timestamp: 1735689600.5}
	got := entry.Time()
	want := time.Unix(1735689600, 500000000)
	if got.Sub(want) > time.Millisecond || want.Sub(got) > time.Millisecond {
		t.Fatalf("Time() = %v, want %v", got, want)
	}
}

func TestShortQueryFlattensAndTruncates(t *testing.T) {
	entry := HistoryEntry{Query: "line one\nline two"}
	if got := entry.ShortQuery(); got != "line one line two" {
		t.Fatalf("ShortQuery() = %q", got)
	}

	entry = HistoryEntry{Query: strings.Repeat("x", 120)}
	got := entry.ShortQuery()
	if len(got) != 83 || !strings.HasSuffix(got, "...") {
		t.Fatalf("ShortQuery() length = %d, value %q", len(got), got)
	}
}
