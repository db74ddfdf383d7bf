package lint

import (
	"os"
	"path/filepath"
	"testing"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}
	return path
}

func TestReadIdentifiersText(t *testing.T) {
	path := writeInput(t, "ids.txt", `# production identifiers
/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/vm1

  /subscriptions/sub/resourceGroups/rg
# trailing comment
`)

	entries, err := ReadIdentifiers(path)
	if err != nil {
		t.Fatalf("ReadIdentifiers failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Line != 2 {
		t.Errorf("first entry line = %d, want 2", entries[0].Line)
	}
	if entries[1].Raw != "/subscriptions/sub/resourceGroups/rg" {
		t.Errorf("second entry = %q", entries[1].Raw)
	}
	if entries[1].Line != 4 {
		t.Errorf("second entry line = %d, want 4", entries[1].Line)
	}
}

func TestReadIdentifiersYAMLSequence(t *testing.T) {
	path := writeInput(t, "ids.yaml", `- /subscriptions/sub/resourceGroups/rg
- /subscriptions/sub
`)

	entries, err := ReadIdentifiers(path)
	if err != nil {
		t.Fatalf("ReadIdentifiers failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Raw != "/subscriptions/sub/resourceGroups/rg" {
		t.Errorf("first entry = %q", entries[0].Raw)
	}
}

func TestReadIdentifiersYAMLMapping(t *testing.T) {
	path := writeInput(t, "ids.yml", `ids:
  - /subscriptions/sub
  - /subscriptions/sub/resourceGroups/rg
`)

	entries, err := ReadIdentifiers(path)
	if err != nil {
		t.Fatalf("ReadIdentifiers failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestReadIdentifiersBadYAML(t *testing.T) {
	path := writeInput(t, "ids.yaml", "{not: [valid")

	if _, err := ReadIdentifiers(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestReadIdentifiersMissingFile(t *testing.T) {
	if _, err := ReadIdentifiers("/no/such/file.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
