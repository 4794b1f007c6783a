package format

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvalidDate is the conventional text shown in place of a timestamp that
// cannot be represented.
const InvalidDate = "Invalid Date"

// MaxTimestamp is the largest magnitude, in milliseconds from the Unix epoch,
// accepted by FormatTimestamp (100,000,000 days either side of 1970).
const MaxTimestamp int64 = 8_640_000_000_000_000

// ErrInvalidTimestamp reports a timestamp outside ±MaxTimestamp.
var ErrInvalidTimestamp = errors.New("format: invalid timestamp")

// timestampWidth covers "YYYY-MM-DDTHH:MM" of the ISO-8601 rendering.
const timestampWidth = 16

// FormatTimestamp renders milliseconds since the Unix epoch as
// "YYYY-MM-DD HH:MM" in UTC. The value is rendered as an ISO-8601 UTC string,
// cut to the date, hour and minute, and the "T" separator becomes a space. The
// host time zone never affects the result.
func FormatTimestamp(ms int64) (string, error) {
	if ms > MaxTimestamp || ms < -MaxTimestamp {
		return "", fmt.Errorf("%w: %d", ErrInvalidTimestamp, ms)
	}
	iso := ISOString(time.UnixMilli(ms))
	return strings.Replace(iso[:timestampWidth], "T", " ", 1), nil
}

// FormatTimestampOr behaves like FormatTimestamp but returns fallback for
// timestamps that cannot be represented.
func FormatTimestampOr(ms int64, fallback string) string {
	out, err := FormatTimestamp(ms)
	if err != nil {
		return fallback
	}
	return out
}

// ISOString renders t in UTC using the simplified ISO-8601 layout
// "YYYY-MM-DDTHH:mm:ss.sssZ". Years outside 0000-9999 use the expanded,
// signed six digit form ("+275760-09-13T00:00:00.000Z").
func ISOString(t time.Time) string {
	t = t.UTC()

	var year string
	switch y := t.Year(); {
	case y >= 0 && y <= 9999:
		year = fmt.Sprintf("%04d", y)
	case y < 0:
		year = fmt.Sprintf("-%06d", -y)
	default:
		year = fmt.Sprintf("+%06d", y)
	}

	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d.%03dZ",
		year, int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}
