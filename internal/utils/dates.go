package utils

import "time"

// DayOf truncates t to midnight of its calendar day in loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	y1, m1, d1 := a.In(loc).Date()
	y2, m2, d2 := b.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func FirstOfMonth(t time.Time, loc *time.Location) time.Time {
	year, month, _ := t.In(loc).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}
