package format_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-fileview/pkg/format"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{name: "epoch", ms: 0, want: "1970-01-01 00:00"},
		{name: "seconds dropped", ms: 59_999, want: "1970-01-01 00:00"},
		{name: "one minute", ms: 60_000, want: "1970-01-01 00:01"},
		{name: "before epoch", ms: -1, want: "1969-12-31 23:59"},
		{name: "recent", ms: 1_700_000_000_000, want: "2023-11-14 22:13"},
		{name: "leap day", ms: time.Date(2024, 2, 29, 13, 45, 10, 0, time.UTC).UnixMilli(), want: "2024-02-29 13:45"},
		{name: "upper bound", ms: format.MaxTimestamp, want: "+275760-09-13 00"},
		{name: "lower bound", ms: -format.MaxTimestamp, want: "-271821-04-20 00"},
		{name: "year zero", ms: time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), want: "0000-01-01 00:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := format.FormatTimestamp(tc.ms)
			if err != nil {
				t.Fatalf("FormatTimestamp(%d) error: %v", tc.ms, err)
			}
			if got != tc.want {
				t.Fatalf("FormatTimestamp(%d) = %q, want %q", tc.ms, got, tc.want)
			}
		})
	}
}

func TestFormatTimestampIgnoresLocalZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	got, err := format.FormatTimestamp(0)
	if err != nil {
		t.Fatalf("FormatTimestamp error: %v", err)
	}
	if got != "1970-01-01 00:00" {
		t.Fatalf("FormatTimestamp(0) = %q, want UTC rendering", got)
	}
}

func TestFormatTimestampOutOfRange(t *testing.T) {
	for _, ms := range []int64{format.MaxTimestamp + 1, -format.MaxTimestamp - 1} {
		got, err := format.FormatTimestamp(ms)
		if !errors.Is(err, format.ErrInvalidTimestamp) {
			t.Fatalf("FormatTimestamp(%d) error = %v, want ErrInvalidTimestamp", ms, err)
		}
		if got != "" {
			t.Fatalf("FormatTimestamp(%d) = %q, want empty string on error", ms, got)
		}
		if fallback := format.FormatTimestampOr(ms, format.InvalidDate); fallback != format.InvalidDate {
			t.Fatalf("FormatTimestampOr(%d) = %q, want %q", ms, fallback, format.InvalidDate)
		}
	}
}

func TestISOString(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 891_000_000, time.FixedZone("x", 2*60*60))
	if got, want := format.ISOString(ts), "2021-03-04T03:06:07.891Z"; got != want {
		t.Fatalf("ISOString = %q, want %q", got, want)
	}
}
