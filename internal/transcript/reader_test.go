package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeInput(t, strings.Join([]string{
		`{"user": "alice", "start": "2024-03-01T12:00:00Z", "end": "2024-03-01T12:00:04Z", "text": "hello there"}`,
		`{"user": "bob", "start": 5.5, "end": 9, "text": "hi alice"}`,
	}, "\n")+"\n")

	utterances, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("got %d utterances, want 2", len(utterances))
	}

	first := utterances[0]
	if first.Speaker != "alice" || first.Text != "hello there" {
		t.Errorf("first utterance = %+v", first)
	}
	if _, ok := first.Start.Instant(); !ok {
		t.Error("first start should be an instant")
	}
	if got := first.Duration(); got != 4 {
		t.Errorf("first duration = %v, want 4", got)
	}

	second := utterances[1]
	if second.Speaker != "bob" {
		t.Errorf("second speaker = %q", second.Speaker)
	}
	if second.Start.Seconds() != 5.5 || second.End.Seconds() != 9 {
		t.Errorf("second timestamps = %v..%v", second.Start.Seconds(), second.End.Seconds())
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl"))
	if !errors.Is(err, ErrInputMissing) {
		t.Errorf("err = %v, want ErrInputMissing", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeInput(t, "")
	_, err := ReadFile(path)
	if !errors.Is(err, ErrInputEmpty) {
		t.Errorf("err = %v, want ErrInputEmpty", err)
	}
}

func TestReadFileMalformed(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		line  int
		field string
	}{
		{
			name:  "broken json",
			lines: []string{`{"user": "alice"`},
			line:  1,
		},
		{
			name: "missing user",
			lines: []string{
				`{"start": 0, "end": 1, "text": "hello"}`,
			},
			line:  1,
			field: "user",
		},
		{
			name: "missing start",
			lines: []string{
				`{"user": "alice", "end": 1, "text": "hello"}`,
			},
			line:  1,
			field: "start",
		},
		{
			name: "missing end",
			lines: []string{
				`{"user": "alice", "start": 0, "text": "hello"}`,
			},
			line:  1,
			field: "end",
		},
		{
			name: "missing text",
			lines: []string{
				`{"user": "alice", "start": 0, "end": 1}`,
			},
			line:  1,
			field: "text",
		},
		{
			name: "bad timestamp on second record",
			lines: []string{
				`{"user": "alice", "start": 0, "end": 1, "text": "hello"}`,
				`{"user": "bob", "start": "soon", "end": 2, "text": "hi"}`,
			},
			line:  2,
			field: "start",
		},
		{
			name: "blank line",
			lines: []string{
				`{"user": "alice", "start": 0, "end": 1, "text": "hello"}`,
				``,
				`{"user": "bob", "start": 1, "end": 2, "text": "hi"}`,
			},
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeInput(t, strings.Join(tt.lines, "\n")+"\n")
			_, err := ReadFile(path)
			if err == nil {
				t.Fatal("ReadFile succeeded, want error")
			}
			var recErr *RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("err = %v, want *RecordError", err)
			}
			if recErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", recErr.Line, tt.line)
			}
			if tt.field != "" && recErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", recErr.Field, tt.field)
			}
		})
	}
}

func TestReadFileNoTrailingNewline(t *testing.T) {
	path := writeInput(t, `{"user": "alice", "start": 0, "end": 1, "text": "hello"}`)
	utterances, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(utterances) != 1 {
		t.Errorf("got %d utterances, want 1", len(utterances))
	}
}

func TestReadFilePreservesOrder(t *testing.T) {
	var lines []string
	for _, text := range []string{"first", "second", "third", "fourth"} {
		lines = append(lines, `{"user": "alice", "start": 0, "end": 1, "text": "`+text+`"}`)
	}
	path := writeInput(t, strings.Join(lines, "\n")+"\n")

	utterances, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := []string{"first", "second", "third", "fourth"}
	for i, u := range utterances {
		if u.Text != want[i] {
			t.Errorf("utterance[%d].Text = %q, want %q", i, u.Text, want[i])
		}
	}
}
