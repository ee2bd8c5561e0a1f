package service

import (
	"testing"
	"time"

	"tutorbook/pkg/model"
)

func TestDeriveStatus(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want model.BookingStatus
	}{
		{"a day ahead", start.Add(-24 * time.Hour), model.StatusPending},
		{"exactly 15 minutes ahead", start.Add(-15 * time.Minute), model.StatusPending},
		{"14m30s ahead", start.Add(-14*time.Minute - 30*time.Second), model.StatusStarting},
		{"one minute ahead", start.Add(-time.Minute), model.StatusStarting},
		{"at start", start, model.StatusStarting},
		{"30 seconds in", start.Add(30 * time.Second), model.StatusOngoing},
		{"59 minutes in", start.Add(59 * time.Minute), model.StatusOngoing},
		{"exactly 60 minutes in", start.Add(60 * time.Minute), model.StatusOngoing},
		{"60m30s in", start.Add(60*time.Minute + 30*time.Second), model.StatusCompleted},
		{"a day later", start.Add(24 * time.Hour), model.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus("2025-03-10", "14:00", tt.now, time.UTC); got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveStatus_Unparseable(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, tc := range [][2]string{
		{"2025-03-10", "afternoon"},
		{"10/03/2025", "14:00"},
		{"", ""},
	} {
		if got := DeriveStatus(tc[0], tc[1], now, time.UTC); got != model.StatusPending {
			t.Errorf("DeriveStatus(%q, %q) = %s, want pending", tc[0], tc[1], got)
		}
	}
}

func TestDeriveStatus_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	// 14:00 at UTC+2 is 12:00 UTC.
	now := time.Date(2025, 3, 10, 12, 5, 0, 0, time.UTC)

	if got := DeriveStatus("2025-03-10", "14:00", now, loc); got != model.StatusOngoing {
		t.Errorf("expected ongoing in UTC+2, got %s", got)
	}
	if got := DeriveStatus("2025-03-10", "14:00", now, time.UTC); got != model.StatusPending {
		t.Errorf("expected pending in UTC, got %s", got)
	}
}

func TestSessionStart_Layouts(t *testing.T) {
	for _, slot := range []string{"9:30", "09:30", "09:30:00", "9:30AM", "9:30 AM"} {
		got, ok := SessionStart("2025-03-10", slot, nil)
		if !ok {
			t.Errorf("%q: expected to parse", slot)
			continue
		}
		if got.Hour() != 9 || got.Minute() != 30 || got.Location() != time.UTC {
			t.Errorf("%q: unexpected instant %v", slot, got)
		}
	}
}
