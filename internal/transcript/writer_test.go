package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteLines(t *testing.T) {
	lines := []Line{
		{Speaker: "alice", Text: "  hello there  "},
		{Speaker: "bob", Text: "hi alice"},
		{Speaker: "alice", Text: "\tgoodbye\n"},
	}

	var buf strings.Builder
	if err := WriteLines(&buf, lines); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}

	want := "alice: hello there\nbob: hi alice\nalice: goodbye\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteLinesEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteLines(&buf, nil); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	if buf.String() != "" {
		t.Errorf("output = %q, want empty", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	lines := []Line{
		{Speaker: "alice", Text: "hello"},
	}

	if err := WriteFile(path, lines); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "alice: hello\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := WriteFile(path, []Line{{Speaker: "bob", Text: "fresh"}}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "bob: fresh\n" {
		t.Errorf("file contents = %q", string(data))
	}
}
