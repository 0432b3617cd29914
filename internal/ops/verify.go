package ops

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// jsonStores are the files the file backend writes into the data
// directory. The sqlite backend is covered by the *.db suffixes below.
var jsonStores = []string{
	"tasks.json",
	"completions.json",
	"summaries.json",
	"quotes.json",
}

// IsStoreFile reports whether a path relative to the data directory is
// one of the growthos stores. Everything else in the directory (restore
// scratch dirs, editor droppings) is not backup material.
func IsStoreFile(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, name := range jsonStores {
		if rel == name {
			return true
		}
	}
	return strings.HasSuffix(rel, ".db") ||
		strings.HasSuffix(rel, ".db-wal") ||
		strings.HasSuffix(rel, ".db-shm")
}

// CheckStores verifies that every JSON store present in dir parses.
// A store that exists but does not decode means the directory is not a
// usable data dir. A sqlite database counts as a present store; its
// integrity is the driver's concern.
func CheckStores(dir string) error {
	present := 0
	for _, name := range jsonStores {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("store %s is corrupt: %w", name, err)
		}
		present++
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".db") {
			present++
		}
	}

	if present == 0 {
		return fmt.Errorf("no store files found in %s", dir)
	}
	return nil
}
