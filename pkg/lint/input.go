package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one identifier read from an input file.
type Entry struct {
	Raw  string
	Line int
}

// yamlDocument is the structured form of a YAML input file. A bare
// sequence of strings is also accepted.
type yamlDocument struct {
	IDs []string `yaml:"ids"`
}

// ReadIdentifiers reads identifiers from a file. Files ending in .yaml
// or .yml are parsed as YAML; everything else is treated as plain text
// with one identifier per line, where blank lines and lines starting
// with # are skipped.
func ReadIdentifiers(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseText(data), nil
	}
}

func parseText(data []byte) []Entry {
	var entries []Entry
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entries = append(entries, Entry{Raw: trimmed, Line: i + 1})
	}
	return entries
}

func parseYAML(data []byte) ([]Entry, error) {
	// A bare sequence of strings first, then the ids: mapping form.
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		var doc yamlDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML input: %w", err)
		}
		ids = doc.IDs
	}

	entries := make([]Entry, 0, len(ids))
	for i, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		entries = append(entries, Entry{Raw: trimmed, Line: i + 1})
	}
	return entries, nil
}
