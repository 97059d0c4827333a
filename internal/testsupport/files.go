package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteJSONL fills the target path with one record per line, adding the
// trailing newline each record needs.
func WriteJSONL(t testing.TB, path string, records ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	var buf bytes.Buffer
	for _, record := range records {
		buf.WriteString(record)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
