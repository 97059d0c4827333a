package transcript

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestTimestampUnmarshalInstant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339 zulu",
			input: `"2024-03-01T12:00:05Z"`,
			want:  time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC),
		},
		{
			name:  "rfc3339 offset",
			input: `"2024-03-01T13:00:05+01:00"`,
			want:  time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: `"2024-03-01T12:00:05.250Z"`,
			want:  time.Date(2024, 3, 1, 12, 0, 5, 250000000, time.UTC),
		},
		{
			name:  "no zone treated as utc",
			input: `"2024-03-01T12:00:05"`,
			want:  time.Date(2024, 3, 1, 12, 0, 5, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			instant, ok := ts.Instant()
			if !ok {
				t.Fatal("expected instant timestamp")
			}
			if !instant.Equal(tt.want) {
				t.Errorf("instant = %v, want %v", instant, tt.want)
			}
			wantSeconds := float64(tt.want.UnixNano()) / float64(time.Second)
			if math.Abs(ts.Seconds()-wantSeconds) > 1e-6 {
				t.Errorf("Seconds() = %v, want %v", ts.Seconds(), wantSeconds)
			}
		})
	}
}

func TestTimestampUnmarshalOffset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", `12`, 12},
		{"float", `3.5`, 3.5},
		{"zero", `0`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if _, ok := ts.Instant(); ok {
				t.Error("expected offset timestamp, got instant")
			}
			if ts.Seconds() != tt.want {
				t.Errorf("Seconds() = %v, want %v", ts.Seconds(), tt.want)
			}
		})
	}
}

func TestTimestampUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage string", `"yesterday"`},
		{"null", `null`},
		{"bool", `true`},
		{"object", `{}`},
		{"empty string", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := ts.UnmarshalJSON([]byte(tt.input)); err == nil {
				t.Errorf("UnmarshalJSON(%s) succeeded, want error", tt.input)
			}
		})
	}
}

func TestTimestampOrderingAcrossForms(t *testing.T) {
	var early, late Timestamp
	if err := json.Unmarshal([]byte(`"2024-03-01T12:00:00Z"`), &early); err != nil {
		t.Fatalf("unmarshal early: %v", err)
	}
	if err := json.Unmarshal([]byte(`"2024-03-01T12:00:30Z"`), &late); err != nil {
		t.Fatalf("unmarshal late: %v", err)
	}
	if early.Seconds() >= late.Seconds() {
		t.Errorf("instant ordering broken: %v >= %v", early.Seconds(), late.Seconds())
	}
}

func TestUtteranceDuration(t *testing.T) {
	var start, end Timestamp
	if err := json.Unmarshal([]byte(`10.5`), &start); err != nil {
		t.Fatalf("unmarshal start: %v", err)
	}
	if err := json.Unmarshal([]byte(`14`), &end); err != nil {
		t.Fatalf("unmarshal end: %v", err)
	}
	u := Utterance{Start: start, End: end}
	if got := u.Duration(); got != 3.5 {
		t.Errorf("Duration() = %v, want 3.5", got)
	}
}

func TestGroupBySpeaker(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "alice", Text: "one"},
		{Speaker: "bob", Text: "two"},
		{Speaker: "alice", Text: "three"},
		{Speaker: "carol", Text: "four"},
		{Speaker: "bob", Text: "five"},
	}

	groups := GroupBySpeaker(utterances)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}

	wantSpeakers := []string{"alice", "bob", "carol"}
	for i, want := range wantSpeakers {
		if groups[i].Speaker != want {
			t.Errorf("group[%d].Speaker = %q, want %q", i, groups[i].Speaker, want)
		}
	}

	if len(groups[0].Utterances) != 2 || groups[0].Utterances[1].Text != "three" {
		t.Errorf("alice group = %+v", groups[0].Utterances)
	}
	if len(groups[1].Utterances) != 2 || groups[1].Utterances[0].Text != "two" {
		t.Errorf("bob group = %+v", groups[1].Utterances)
	}
}

func TestGroupBySpeakerEmpty(t *testing.T) {
	if groups := GroupBySpeaker(nil); len(groups) != 0 {
		t.Errorf("got %d groups, want 0", len(groups))
	}
}
