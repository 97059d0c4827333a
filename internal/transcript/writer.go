package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one kept utterance in final output order. Start is retained for
// sorting; only the speaker and trimmed text are written.
type Line struct {
	Start   Timestamp
	Speaker string
	Text    string
}

// WriteLines writes the deduplicated transcript, one "speaker: text" line
// per utterance with surrounding whitespace trimmed from the text.
func WriteLines(w io.Writer, lines []Line) error {
	buffered := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintf(buffered, "%s: %s\n", line.Speaker, strings.TrimSpace(line.Text)); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// WriteFile writes the deduplicated transcript to path, replacing any
// existing file.
func WriteFile(path string, lines []Line) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := WriteLines(file, lines); err != nil {
		_ = file.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
