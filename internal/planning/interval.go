package planning

import (
	"time"

	"vigiplan-backend/internal/models"
)

const (
	dateLayout        = "2006-01-02"
	timeLayout        = "15:04"
	timeLayoutSeconds = "15:04:05"
)

// All planning math happens in a single fixed zone over naive wall-clock
// strings. Every day is exactly 24h; DST is deliberately ignored.
var planningZone = time.UTC

// Interval is an absolute [Start, End) pair resolved from a vacation.
// It is derived on demand and never persisted.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the wall-clock span of the interval
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back intervals (one ends exactly when the other starts) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Validate rejects intervals no vacation could produce: a resolved shift is
// strictly positive and never longer than 24h. Pre-resolved calendar events go
// through this before classification.
func (iv Interval) Validate() error {
	d := iv.Duration()
	if d <= 0 {
		return &ValidationError{Field: "interval", Value: iv.Start.Format(time.RFC3339), Reason: "end must be after start"}
	}
	if d > 24*time.Hour {
		return &ValidationError{Field: "interval", Value: iv.Start.Format(time.RFC3339), Reason: "shifts longer than 24h are not supported"}
	}
	return nil
}

// Resolve converts a (date, start, end) triple into an absolute interval.
// If the end time is at or before the start time, the shift crosses midnight
// and ends on the next day.
func Resolve(date, start, end string) (Interval, error) {
	day, err := time.ParseInLocation(dateLayout, date, planningZone)
	if err != nil {
		return Interval{}, &ValidationError{Field: "date", Value: date, Reason: "expected YYYY-MM-DD"}
	}

	startOfDay, err := parseTimeOfDay(start)
	if err != nil {
		return Interval{}, &ValidationError{Field: "start", Value: start, Reason: "expected HH:MM"}
	}
	endOfDay, err := parseTimeOfDay(end)
	if err != nil {
		return Interval{}, &ValidationError{Field: "end", Value: end, Reason: "expected HH:MM"}
	}

	iv := Interval{
		Start: day.Add(startOfDay),
		End:   day.Add(endOfDay),
	}
	if !iv.End.After(iv.Start) {
		iv.End = iv.End.Add(24 * time.Hour)
	}
	return iv, nil
}

// ResolveVacation resolves a mission vacation
func ResolveVacation(v models.Vacation) (Interval, error) {
	return Resolve(v.Date, v.Start, v.End)
}

// parseTimeOfDay parses HH:MM (seconds optional) into an offset from midnight
func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(timeLayoutSeconds, s)
		if err != nil {
			return 0, err
		}
	}
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
