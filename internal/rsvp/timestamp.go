package rsvp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// naiveLayout is what Python's isoformat() produces for a timestamp without a zone.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a creation time that tolerates zone-less ISO strings.
// Zone-less values are read as UTC. Values that cannot be parsed keep a zero
// Time and their original text in Raw.
type Timestamp struct {
	time.Time
	Raw string
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		if t.Raw != "" {
			return json.Marshal(t.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// UnmarshalJSON never fails: a listing must not be rejected over one odd
// created_at.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		t.Raw = strings.TrimSpace(string(data))
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		t.Raw = s
		return nil
	}
	t.Time = parsed
	return nil
}

// Display renders the time in UTC with layout, falling back to the raw text.
func (t Timestamp) Display(layout string) string {
	if t.IsZero() {
		return t.Raw
	}
	return t.UTC().Format(layout)
}

func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_at %q: unrecognized timestamp", s)
	}
	return ts, nil
}
