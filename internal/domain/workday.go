package domain

import "time"

// WorkDayOf returns the business date the instant t belongs to.
// Hours strictly before rolloverHour still belong to the previous
// calendar day: with rollover at 02:00, 01:30 on March 2nd is part of
// the March 1st board, while 02:00 sharp opens March 2nd.
func WorkDayOf(t time.Time, rolloverHour int) time.Time {
	if t.Hour() < rolloverHour {
		t = t.AddDate(0, 0, -1)
	}

	return BeginningOfDay(t)
}

// BeginningOfDay truncates t to midnight in its own location.
func BeginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameWorkDay returns true if both instants fall on the same business
// date under the given rollover hour.
func IsSameWorkDay(a, b time.Time, rolloverHour int) bool {
	return WorkDayOf(a, rolloverHour).Equal(WorkDayOf(b, rolloverHour))
}
