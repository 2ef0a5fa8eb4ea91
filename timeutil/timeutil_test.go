package timeutil_test

import (
	"testing"
	"time"

	"github.com/cocob23/jobexpo-backend/timeutil"
)

func strptr(s string) *string { return &s }

func TestStamp(t *testing.T) {
	at := time.Date(2025, 6, 20, 9, 5, 0, 0, time.Local)
	date, clock := timeutil.Stamp(at)
	if date != "2025-06-20" {
		t.Errorf("Stamp date = %q, want %q", date, "2025-06-20")
	}
	if clock != "09:05:00" {
		t.Errorf("Stamp clock = %q, want %q", clock, "09:05:00")
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name             string
		inDate, inTime   string
		outDate, outTime *string
		want             int
		ok               bool
	}{
		{"full workday", "2025-06-20", "09:05:00", strptr("2025-06-20"), strptr("17:35:00"), 510, true},
		{"overnight", "2025-06-20", "22:00:00", strptr("2025-06-21"), strptr("06:00:00"), 480, true},
		{"zero minutes", "2025-06-20", "09:00:00", strptr("2025-06-20"), strptr("09:00:30"), 0, true},
		{"minutes without seconds", "2025-06-20", "09:00", strptr("2025-06-20"), strptr("09:45"), 45, true},
		{"still open", "2025-06-20", "09:05:00", nil, nil, 0, false},
		{"negative skew", "2025-06-20", "17:00:00", strptr("2025-06-20"), strptr("09:00:00"), 0, false},
		{"garbage check-in", "2025-06-20", "xx:yy", strptr("2025-06-20"), strptr("17:00:00"), 0, false},
		{"garbage check-out", "2025-06-20", "09:00:00", strptr("not-a-date"), strptr("17:00:00"), 0, false},
	}
	for _, tt := range tests {
		got, ok := timeutil.DurationMinutes(tt.inDate, tt.inTime, tt.outDate, tt.outTime)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%s: DurationMinutes = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		mins int
		ok   bool
	}{
		{"09:00", 540, true},
		{"09:07:30", 547, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"", 0, false},
		{"9am", 0, false},
		{"25:00", 0, false},
	}
	for _, tt := range tests {
		got, ok := timeutil.ParseClock(tt.in)
		if ok != tt.ok || got != tt.mins {
			t.Errorf("ParseClock(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.mins, tt.ok)
		}
	}
}

func TestIsLate(t *testing.T) {
	tests := []struct {
		arrival, expected string
		grace             int
		want              bool
	}{
		{"09:07:00", "09:00", 10, false}, // dentro de la tolerancia
		{"09:10:00", "09:00", 10, false}, // justo en el límite
		{"09:12:00", "09:00", 10, true},
		{"08:50:00", "09:00", 10, false},
		{"09:12:00", "", 10, false},      // sin política: nunca tarde
		{"", "09:00", 10, false},         // sin hora de llegada
		{"garbage", "09:00", 10, false},  // dato roto no marca tarde
		{"09:30:00", "bad-hh", 10, false},
		{"09:01:00", "09:00", 0, true},
	}
	for _, tt := range tests {
		got := timeutil.IsLate(tt.arrival, tt.expected, tt.grace)
		if got != tt.want {
			t.Errorf("IsLate(%q, %q, %d) = %v, want %v", tt.arrival, tt.expected, tt.grace, got, tt.want)
		}
	}
}

func TestMapsURL(t *testing.T) {
	got := timeutil.MapsURL(-34.6, -58.38)
	want := "https://www.google.com/maps?q=-34.6,-58.38"
	if got != want {
		t.Errorf("MapsURL = %q, want %q", got, want)
	}
}

func TestFormatFix(t *testing.T) {
	got := timeutil.FormatFix(-34.600001234, -58.38)
	want := "-34.60000, -58.38000"
	if got != want {
		t.Errorf("FormatFix = %q, want %q", got, want)
	}
}
