package service

import (
	"math"
	"time"

	"tutorbook/pkg/model"
)

var slotLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04PM",
	"2006-01-02 3:04 PM",
}

// SessionStart resolves a booking's date and slot label to an instant in loc.
func SessionStart(date, slot string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, date+" "+slot, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveStatus places a session relative to now:
//
//	minutes = floor((start - now) / 1m)
//	minutes < -60  completed
//	minutes < 0    ongoing
//	minutes < 15   starting
//	otherwise      pending
//
// A date or slot that cannot be parsed yields pending.
func DeriveStatus(date, slot string, now time.Time, loc *time.Location) model.BookingStatus {
	start, ok := SessionStart(date, slot, loc)
	if !ok {
		return model.StatusPending
	}

	minutes := math.Floor(start.Sub(now).Minutes())
	switch {
	case minutes < -60:
		return model.StatusCompleted
	case minutes < 0:
		return model.StatusOngoing
	case minutes < 15:
		return model.StatusStarting
	default:
		return model.StatusPending
	}
}
