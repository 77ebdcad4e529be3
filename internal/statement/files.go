package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the statement export file suffix, matched case-insensitively.
const Extension = ".ofx"

// List returns the statement files directly inside dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read statement dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

// ReadFile loads and decodes one export into lines, reporting the sniffed
// encoding.
func ReadFile(path string) ([]string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read statement: %w", err)
	}
	text, enc, err := Decode(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode statement: %w", err)
	}
	return Lines(text), enc, nil
}

// ProcessedPath maps a file under incoming to the same relative location
// under processed. Paths outside incoming have the first path segment equal
// to incoming's base name replaced instead.
func ProcessedPath(path, incoming, processed string) string {
	if rel, err := filepath.Rel(incoming, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join(processed, rel)
	}
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	from, to := filepath.Base(incoming), filepath.Base(processed)
	for i, p := range parts {
		if p == from {
			parts[i] = to
			break
		}
	}
	return strings.Join(parts, string(filepath.Separator))
}

// Move relocates a consumed export from incoming to processed, creating the
// target directory when needed, and returns the new path.
func Move(path, incoming, processed string) (string, error) {
	target := ProcessedPath(path, incoming, processed)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("mkdir processed dir: %w", err)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fmt.Errorf("move statement: %w", err)
	}
	return target, nil
}
