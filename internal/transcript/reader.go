package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrInputMissing indicates the input file does not exist.
	ErrInputMissing = errors.New("input file not found")
	// ErrInputEmpty indicates the input file contains no records.
	ErrInputEmpty = errors.New("input file is empty")
	// ErrMissingField indicates a record omitted a required field.
	ErrMissingField = errors.New("missing required field")
)

// RecordError reports a fatal problem with a single input record. Line is
// 1-based; Field names the offending field when it can be attributed.
type RecordError struct {
	Line  int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d: field %q: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// wireUtterance mirrors one JSONL record. Pointer and raw fields
// distinguish absent values from zero values.
type wireUtterance struct {
	User  *string         `json:"user"`
	Start json.RawMessage `json:"start"`
	End   json.RawMessage `json:"end"`
	Text  *string         `json:"text"`
}

// maxRecordBytes bounds a single input line. Spoken utterances are short;
// this is far above anything a transcription step emits.
const maxRecordBytes = 1 << 20

// ReadFile loads a newline-delimited JSON transcript. Every line must be a
// valid record carrying user, start, end, and text; the first malformed or
// incomplete record aborts the load with a RecordError. A missing file and
// an empty file are distinct errors so callers can report them precisely.
func ReadFile(path string) ([]Utterance, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
		}
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	var utterances []Utterance
	line := 0
	for scanner.Scan() {
		line++
		utterance, err := parseRecord(line, scanner.Bytes())
		if err != nil {
			return nil, err
		}
		utterances = append(utterances, utterance)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if line == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInputEmpty, path)
	}
	return utterances, nil
}

func parseRecord(line int, data []byte) (Utterance, error) {
	var record wireUtterance
	if err := json.Unmarshal(data, &record); err != nil {
		return Utterance{}, &RecordError{Line: line, Err: fmt.Errorf("parse json: %w", err)}
	}

	if record.User == nil {
		return Utterance{}, &RecordError{Line: line, Field: "user", Err: ErrMissingField}
	}
	if record.Start == nil {
		return Utterance{}, &RecordError{Line: line, Field: "start", Err: ErrMissingField}
	}
	if record.End == nil {
		return Utterance{}, &RecordError{Line: line, Field: "end", Err: ErrMissingField}
	}
	if record.Text == nil {
		return Utterance{}, &RecordError{Line: line, Field: "text", Err: ErrMissingField}
	}

	var start, end Timestamp
	if err := start.UnmarshalJSON(record.Start); err != nil {
		return Utterance{}, &RecordError{Line: line, Field: "start", Err: err}
	}
	if err := end.UnmarshalJSON(record.End); err != nil {
		return Utterance{}, &RecordError{Line: line, Field: "end", Err: err}
	}

	return Utterance{
		Speaker: *record.User,
		Start:   start,
		End:     end,
		Text:    *record.Text,
	}, nil
}
