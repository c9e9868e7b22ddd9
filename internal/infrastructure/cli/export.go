package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteExplanation saves an explanation to a file. The format follows the
// extension: .json wraps title and content in an object, .md/.markdown adds
// a heading, anything else is written verbatim with a trailing newline.
func WriteExplanation(path, title, content string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		encoded, err := json.MarshalIndent(map[string]string{
			"title":   title,
			"content": content,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("encode explanation: %w", err)
		}
		data = encoded
	case ".md", ".markdown":
		data = []byte(fmt.Sprintf("# %s\n\n%s\n", title, content))
	default:
		data = []byte(content + "\n")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write explanation: %w", err)
	}
	return nil
}
