package planning

import "time"

// Night premium window: 21:00 to 06:00, expressed in minutes from midnight
const (
	nightMorningEnd   = 6 * 60  // [00:00, 06:00)
	nightEveningStart = 21 * 60 // [21:00, 24:00)
	minutesPerDay     = 24 * 60
)

// Breakdown splits a shift's duration into payroll categories, in hours.
// Categories are independent, not exclusive: a minute worked on a Sunday night
// counts toward Night, Sunday and Total alike.
type Breakdown struct {
	Total   float64 `json:"total"`
	Night   float64 `json:"night"`
	Sunday  float64 `json:"sunday"`
	Holiday float64 `json:"holiday"`
}

// Classify computes the payroll breakdown of a resolved interval.
//
// The interval is cut at every midnight it spans, so each segment lies within
// a single calendar day and its day-of-week / holiday status is uniform. Night
// hours are the closed-form overlap of the segment with the 21:00-06:00 window
// rather than a minute-by-minute count; the result is identical at minute
// precision.
func Classify(iv Interval) Breakdown {
	var b Breakdown

	cursor := iv.Start
	for cursor.Before(iv.End) {
		nextMidnight := midnightAfter(cursor)
		segEnd := iv.End
		if nextMidnight.Before(segEnd) {
			segEnd = nextMidnight
		}

		minutes := segEnd.Sub(cursor).Minutes()
		b.Total += minutes / 60

		// Offsets from this day's midnight, in minutes
		dayStart := cursor.Truncate(24 * time.Hour)
		from := cursor.Sub(dayStart).Minutes()
		to := from + minutes

		night := overlap(from, to, 0, nightMorningEnd) + overlap(from, to, nightEveningStart, minutesPerDay)
		b.Night += night / 60

		if cursor.Weekday() == time.Sunday {
			b.Sunday += minutes / 60
		}
		if IsPublicHoliday(cursor) {
			b.Holiday += minutes / 60
		}

		cursor = segEnd
	}

	return b
}

// midnightAfter returns the first midnight strictly after t
func midnightAfter(t time.Time) time.Time {
	return t.Truncate(24 * time.Hour).Add(24 * time.Hour)
}

// overlap returns the length of the intersection of [aFrom, aTo) and [bFrom, bTo)
func overlap(aFrom, aTo, bFrom, bTo float64) float64 {
	from := aFrom
	if bFrom > from {
		from = bFrom
	}
	to := aTo
	if bTo < to {
		to = bTo
	}
	if to <= from {
		return 0
	}
	return to - from
}
