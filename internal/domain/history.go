package domain

import (
	"strings"
	"time"
)

// CommandType identifies which handler produced a history entry.
type CommandType string

const (
	TypeCmd   CommandType = "cmd"
	TypeError CommandType = "error"
	TypeCode  CommandType = "code"
	TypeDiff  CommandType = "diff"
	TypePipe  CommandType = "pipe"
	TypeChat  CommandType = "chat"
	TypeWtf   CommandType = "wtf"
)

// CommandTypes lists every valid history entry type.
var CommandTypes = []CommandType{TypeCmd, TypeError, TypeCode, TypeDiff, TypePipe, TypeChat, TypeWtf}

// HistoryEntry is one persisted record of a past query and its explanation.
// Entries are immutable once created.
type HistoryEntry struct {
	Timestamp   float64        `json:"timestamp"`
	CommandType CommandType    `json:"command_type"`
	Query       string         `json:"query"`
	Explanation string         `json:"explanation"`
	Language    string         `json:"language"`
	Metadata    map[string]any `json:"metadata"`
}

// Time converts the epoch-seconds timestamp back to a time.Time.
func (e HistoryEntry) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// ShortQuery returns a single-line query preview for table display.
func (e HistoryEntry) ShortQuery() string {
	q := strings.TrimSpace(strings.ReplaceAll(e.Query, "\n", " "))
	if len(q) > 80 {
		return q[:80] + "..."
	}
	return q
}
