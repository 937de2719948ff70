package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a backend time value. Text that matches none of the known
// layouts is kept in Raw and shown as sent.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// UnmarshalJSON accepts a string in any known layout, epoch milliseconds,
// free text or null. It fails only on malformed JSON.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] != '"' {
		var ms json.Number
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("decoding timestamp: %w", err)
		}
		if n, err := ms.Int64(); err == nil {
			t.Time = time.UnixMilli(n).UTC()
			return nil
		}
		t.Raw = ms.String()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Raw = s
	return nil
}

// MarshalJSON writes RFC 3339 for parsed values and the raw text otherwise.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case !t.Time.IsZero():
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	case t.Raw != "":
		return json.Marshal(t.Raw)
	default:
		return []byte("null"), nil
	}
}

// IsZero reports whether nothing was sent.
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero() && t.Raw == ""
}

// Format renders a parsed time with layout, raw text verbatim and "-" when
// empty.
func (t Timestamp) Format(layout string) string {
	switch {
	case !t.Time.IsZero():
		return t.Time.Format(layout)
	case t.Raw != "":
		return t.Raw
	default:
		return "-"
	}
}
