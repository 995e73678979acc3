package planning

import "time"

// French public holidays with a fixed date, recomputed for the year of the
// instant being classified. Movable holidays (Easter Monday, Ascension,
// Pentecost Monday) are a known gap and deliberately not included.
var fixedHolidays = [...]struct {
	Month time.Month
	Day   int
}{
	{time.January, 1},   // Jour de l'an
	{time.May, 1},       // Fête du travail
	{time.May, 8},       // Victoire 1945
	{time.July, 14},     // Fête nationale
	{time.August, 15},   // Assomption
	{time.November, 1},  // Toussaint
	{time.November, 11}, // Armistice
	{time.December, 25}, // Noël
}

// IsPublicHoliday reports whether the instant falls on a public holiday
func IsPublicHoliday(t time.Time) bool {
	for _, h := range fixedHolidays {
		if t.Month() == h.Month && t.Day() == h.Day {
			return true
		}
	}
	return false
}
