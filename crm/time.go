package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Time accepts the timestamp shapes the CRM API emits, including naive
// datetimes without a zone (interpreted as UTC) and plain dates.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func ParseTime(s string) (Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Time{Time: t}, nil
		}
	}
	return Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Date renders the day part for list views.
func (t Time) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
