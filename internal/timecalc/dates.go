package timecalc

import "time"

const DateLayout = "2006-01-02"

// Report periods resolvable by PeriodRange.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ExpandRange produces every calendar date in [start, end] inclusive, in
// ascending order, as DateLayout strings. An inverted range yields nil.
func ExpandRange(start, end time.Time) []string {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// PeriodRange resolves a named period to its [start, end] pair relative to
// today. The week is Monday-anchored: on a Sunday the week started six
// days earlier. Unknown periods collapse to today.
func PeriodRange(period string, today time.Time) (time.Time, time.Time) {
	today = truncateToDay(today)

	switch period {
	case PeriodWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), today
	case PeriodMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today
	case PeriodYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), today
	default:
		return today, today
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
