package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store reads and writes the ledger file. Missing or corrupt state never
// fails a run: the scan proceeds against an empty ledger and rebuilds what
// the chat history still proves.
type Store struct {
	path string
}

// NewStore returns a store bound to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted ledger. A missing file yields an empty ledger;
// an unreadable or invalid file is logged and likewise yields an empty one.
func (s *Store) Load() *Ledger {
	data, err := os.ReadFile(s.path) // #nosec G304
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("ledger unreadable, starting empty", "path", s.path, "error", err)
		}
		return New()
	}

	led := New()
	if err := json.Unmarshal(data, led); err != nil {
		slog.Warn("ledger corrupt, starting empty", "path", s.path, "error", err)
		return New()
	}
	return led
}

// Save writes the ledger back in normalized form: sorted, deduplicated
// apartment lists per period, untouched periods preserved as-is. The write
// goes through a temp file and rename so a crash cannot truncate history.
func (s *Store) Save(led *Ledger) error {
	data, err := json.MarshalIndent(led, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}
