package manifest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Manifest is the ordered list of script paths loaded from a manifest file.
// Entries keep the file's order, and the same script may appear more than
// once.
type Manifest struct {
	Path    string
	Entries []string
}

// Load reads a manifest file into memory. Lines are trimmed of surrounding
// whitespace; blank lines and '#' comment lines are skipped.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	m := &Manifest{Path: path}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.Entries = append(m.Entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	return m, nil
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Entries)
}
