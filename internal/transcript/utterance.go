package transcript

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Utterance is one timestamped, speaker-attributed text record. The engine
// never mutates an utterance after load.
type Utterance struct {
	Speaker string
	Start   Timestamp
	End     Timestamp
	Text    string
}

// Duration returns the utterance's time span in seconds.
func (u Utterance) Duration() float64 {
	return u.End.Seconds() - u.Start.Seconds()
}

// Timestamp is a point in time read from an utterance record. The wire
// value is either an ISO-8601 string or a bare number of seconds; both
// forms are kept as written and exposed as a comparable seconds value, so
// ordering, containment, and time-gap checks work the same way for either
// representation.
type Timestamp struct {
	raw        string
	offset     float64
	instant    time.Time
	hasInstant bool
}

// instantLayouts are tried in order when parsing string timestamps.
// RFC 3339 covers the common case; the bare layouts accept values without
// a zone, which are treated as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// OffsetTimestamp builds a timestamp from a bare seconds offset, as if the
// wire value had been a JSON number.
func OffsetTimestamp(seconds float64) Timestamp {
	return Timestamp{raw: strconv.FormatFloat(seconds, 'g', -1, 64), offset: seconds}
}

// UnmarshalJSON accepts either a JSON string holding an ISO-8601 instant
// or a JSON number holding a seconds offset.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return fmt.Errorf("timestamp must be a string or number")
	}

	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("parse timestamp: %w", err)
		}
		instant, err := parseInstant(value)
		if err != nil {
			return err
		}
		*t = Timestamp{raw: value, instant: instant, hasInstant: true}
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*t = Timestamp{raw: trimmed, offset: value}
	return nil
}

func parseInstant(value string) (time.Time, error) {
	cleaned := strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if instant, err := time.Parse(layout, cleaned); err == nil {
			return instant, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// Seconds returns the timestamp as a comparable number of seconds: the
// epoch seconds of an instant, or the raw value of a numeric offset.
func (t Timestamp) Seconds() float64 {
	if t.hasInstant {
		return float64(t.instant.UnixNano()) / float64(time.Second)
	}
	return t.offset
}

// Instant returns the parsed instant and whether the timestamp was an
// ISO-8601 string rather than a numeric offset.
func (t Timestamp) Instant() (time.Time, bool) {
	return t.instant, t.hasInstant
}

// IsZero reports whether the timestamp was never set.
func (t Timestamp) IsZero() bool {
	return t.raw == ""
}

// String returns the timestamp as it appeared in the input.
func (t Timestamp) String() string {
	return t.raw
}

// SpeakerGroup holds one speaker's utterances in input order.
type SpeakerGroup struct {
	Speaker    string
	Utterances []Utterance
}

// GroupBySpeaker partitions utterances by speaker. Speakers appear in
// first-appearance order and each group keeps its utterances in input
// order.
func GroupBySpeaker(utterances []Utterance) []SpeakerGroup {
	index := make(map[string]int)
	var groups []SpeakerGroup
	for _, u := range utterances {
		pos, ok := index[u.Speaker]
		if !ok {
			pos = len(groups)
			index[u.Speaker] = pos
			groups = append(groups, SpeakerGroup{Speaker: u.Speaker})
		}
		groups[pos].Utterances = append(groups[pos].Utterances, u)
	}
	return groups
}
