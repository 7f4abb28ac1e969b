package journal

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts are tried in order. The second one is what go-sqlite3 writes.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses the timestamp formats found in journal exports. Values
// without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	return ParseTimeIn(s, time.UTC)
}

// ParseTimeIn is ParseTime with zone-less values read in loc.
func ParseTimeIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// looseTime scans a nullable timestamp column without failing the row.
// A value that cannot be read leaves t nil and sets malformed.
type looseTime struct {
	t         *time.Time
	raw       string
	malformed bool
}

func (lt *looseTime) Scan(src any) error {
	*lt = looseTime{}

	switch v := src.(type) {
	case nil:
	case time.Time:
		// go-sqlite3 hands back the zero time for DATETIME text it cannot parse.
		if v.IsZero() {
			lt.malformed = true
			return nil
		}
		lt.t = &v
	case string:
		lt.parse(v)
	case []byte:
		lt.parse(string(v))
	default:
		lt.raw = fmt.Sprint(v)
		lt.malformed = true
	}
	return nil
}

func (lt *looseTime) parse(s string) {
	lt.raw = s
	if strings.TrimSpace(s) == "" {
		return
	}
	t, err := ParseTime(s)
	if err != nil {
		lt.malformed = true
		return
	}
	lt.t = &t
}
