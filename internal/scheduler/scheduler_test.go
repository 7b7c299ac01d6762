package scheduler

import (
	"testing"
	"time"
)

func TestShouldSendNow(t *testing.T) {
	cases := []struct {
		name string
		tz   string
		hhmm string
		now  time.Time
		want bool
	}{
		{
			name: "before window",
			tz:   "UTC", hhmm: "08:45",
			now:  time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "exactly at window",
			tz:   "UTC", hhmm: "08:45",
			now:  time.Date(2025, 6, 2, 8, 45, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "later hour",
			tz:   "UTC", hhmm: "08:45",
			now:  time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "zone shifts the local hour",
			tz:   "America/Lima", hhmm: "08:45",
			// 13:50 UTC is 08:50 in Lima (UTC-5).
			now:  time.Date(2025, 6, 2, 13, 50, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "zone shifts below the window",
			tz:   "America/Lima", hhmm: "08:45",
			// 13:30 UTC is 08:30 in Lima.
			now:  time.Date(2025, 6, 2, 13, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "bad zone falls back to UTC",
			tz:   "Not/AZone", hhmm: "08:45",
			now:  time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "bad threshold falls back to 08:45",
			tz:   "UTC", hhmm: "bogus",
			now:  time.Date(2025, 6, 2, 8, 44, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldSendNow(tc.tz, tc.hhmm, tc.now); got != tc.want {
				t.Errorf("ShouldSendNow(%q, %q, %s) = %v, want %v",
					tc.tz, tc.hhmm, tc.now, got, tc.want)
			}
		})
	}
}
