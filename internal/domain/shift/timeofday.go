package shift

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the wall clock in minutes.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time without a date, stored as minutes since midnight (0-1439).
type TimeOfDay int

var timeOfDayRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return TimeOfDay(h*60 + min), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for literals; it panics on malformed input.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeFormat, hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayOf returns the wall-clock time of t, truncated to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the hour component, 0-23.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component, 0-59.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// String formats t as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add moves t forward by minutes, wrapping around midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	v := (int(t) + minutes) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return TimeOfDay(v)
}

// MinutesUntil is the forward clock distance from t to end.
// An end at or before t is on the following day.
func (t TimeOfDay) MinutesUntil(end TimeOfDay) int {
	if end <= t {
		return int(end) + MinutesPerDay - int(t)
	}
	return int(end) - int(t)
}

// On places t on the calendar date of day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, string(data))
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores t as "HH:MM" so Postgres can cast it into a TIME column.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan reads a Postgres TIME in any of the representations the driver hands back.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return t.scanText(v)
	case []byte:
		return t.scanText(string(v))
	case time.Time:
		*t = TimeOfDayOf(v)
		return nil
	case int64:
		// microseconds since midnight
		*t = TimeOfDay((v / int64(time.Minute/time.Microsecond)) % MinutesPerDay)
		return nil
	case nil:
		return fmt.Errorf("%w: null time", ErrInvalidTimeFormat)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeOfDay) scanText(s string) error {
	// TIME columns come back as HH:MM:SS[.ffffff]
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
