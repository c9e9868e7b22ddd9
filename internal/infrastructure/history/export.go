package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/xplain-go/internal/ports"
)

// Export writes every retained entry to dest. The format is picked from the
// extension: .db/.sqlite produces a SQLite database, anything else JSONL.
func Export(src ports.HistoryRepository, dest string) (int, error) {
	entries, err := src.List(0, "")
	if err != nil {
		return 0, err
	}

	switch strings.ToLower(filepath.Ext(dest)) {
	case ".db", ".sqlite":
		store, err := openSQLiteStore(dest, len(entries))
		if err != nil {
			return 0, err
		}
		defer store.Close()
		for _, entry := range entries {
			if err := store.insert(entry); err != nil {
				return 0, err
			}
		}
		return len(entries), nil
	default:
		file, err := os.Create(dest)
		if err != nil {
			return 0, err
		}
		defer file.Close()
		for _, entry := range entries {
			b, err := json.Marshal(entry)
			if err != nil {
				return 0, err
			}
			if _, err := file.Write(append(b, '\n')); err != nil {
				return 0, err
			}
		}
		return len(entries), nil
	}
}
